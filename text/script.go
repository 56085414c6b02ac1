package text

import (
	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/bidi"
)

// guessScript returns the dominant script of runes: the script with the
// most characters once Common and Inherited characters are set aside.
// Ties go to the script seen first. Text with no script-specific
// characters is treated as Latin.
func guessScript(runes []rune) language.Script {
	counts := make(map[language.Script]int)
	var order []language.Script
	for _, r := range runes {
		s := language.LookupScript(r)
		if s == language.Common || s == language.Inherited || s == language.Unknown {
			continue
		}
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}

	best, bestCount := language.Latin, 0
	for _, s := range order {
		if counts[s] > bestCount {
			best, bestCount = s, counts[s]
		}
	}
	return best
}

// guessDirection returns the dominant direction of text, counting strong
// left-to-right against strong right-to-left characters. Text without
// strong characters is left-to-right.
func guessDirection(text string) Direction {
	var ltr, rtl int
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			ltr++
		case bidi.R, bidi.AL:
			rtl++
		}
	}
	if rtl > ltr {
		return DirectionRTL
	}
	return DirectionLTR
}
