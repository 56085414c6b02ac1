// Command vfpreview shows a live preview of a variable font in the terminal.
//
// Usage:
//
//	vfpreview [--text|-t TEXT] [--size|-s PX] [--width W] [--height H] [--columns N] [--once] [-v] FONT
//
// FONT is a font file path or the file name of an installed font. After the
// first render, commands typed at the prompt move axes, change the text or
// size and re-render. Nothing is written to disk.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chzyer/readline"
	"github.com/flopp/go-findfont"
	"github.com/pterm/pterm"

	"github.com/gogpu/vfpreview"
)

// config is the parsed command line.
type config struct {
	text    string
	size    float64
	width   int
	height  int
	columns int
	verbose bool
	once    bool
	font    string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	initDisplay()
	if cfg.verbose {
		vfpreview.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	path, err := resolveFont(cfg.font)
	if err != nil {
		pterm.Error.Println(err)
		return 1
	}

	p, err := vfpreview.Open(path,
		vfpreview.WithText(cfg.text),
		vfpreview.WithPixelSize(cfg.size),
		vfpreview.WithCanvasSize(cfg.width, cfg.height),
	)
	if err != nil {
		pterm.Error.Println(err)
		return 1
	}
	defer p.Close()

	intp := &Intp{preview: p, columns: cfg.columns, out: os.Stdout}
	intp.printAxes()
	intp.render()
	if cfg.once {
		return 0
	}

	repl, err := readline.New("vf > ")
	if err != nil {
		pterm.Error.Println(err)
		return 3
	}
	defer repl.Close()
	intp.repl = repl

	pterm.Info.Println("Type 'help' for commands, quit with <ctrl>D")
	intp.REPL()
	return 0
}

// parseFlags parses the command line. Errors have already been reported
// on stderr together with the usage text.
func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("vfpreview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: vfpreview [--text|-t TEXT] [--size|-s PX] [--width W] [--height H] [--columns N] [--once] [-v] FONT\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.text, "text", "", "preview `text`")
	fs.StringVar(&cfg.text, "t", "", "shorthand for --text")
	fs.Float64Var(&cfg.size, "size", vfpreview.DefaultPixelSize, "font size in `pixels` per em")
	fs.Float64Var(&cfg.size, "s", vfpreview.DefaultPixelSize, "shorthand for --size")
	fs.IntVar(&cfg.width, "width", vfpreview.DefaultCanvasWidth, "canvas width in pixels")
	fs.IntVar(&cfg.height, "height", vfpreview.DefaultCanvasHeight, "canvas height in pixels")
	fs.IntVar(&cfg.columns, "columns", 120, "terminal columns used for the preview")
	fs.BoolVar(&cfg.verbose, "v", false, "log pipeline diagnostics to stderr")
	fs.BoolVar(&cfg.once, "once", false, "render once and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return cfg, errors.New("missing FONT argument")
	}
	cfg.font = fs.Arg(0)

	if cfg.size <= 0 || cfg.width <= 0 || cfg.height <= 0 || cfg.columns <= 0 {
		fmt.Fprintln(stderr, "size, width, height and columns must be positive")
		fs.Usage()
		return cfg, errors.New("invalid dimensions")
	}
	return cfg, nil
}

// resolveFont returns name itself when it is an existing file, and
// otherwise looks it up among the installed fonts.
func resolveFont(name string) (string, error) {
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return name, nil
	}
	path, err := findfont.Find(name)
	if err != nil {
		return "", fmt.Errorf("font %q not found: %w", name, err)
	}
	return path, nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " i ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
