package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/gogpu/vfpreview"
)

// Intp is our interpreter object.
type Intp struct {
	preview *vfpreview.Previewer
	repl    *readline.Instance
	columns int
	out     io.Writer
}

// REPL reads commands until quit or end of input.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type opcode int

const (
	opQuit opcode = iota
	opHelp
	opAxes
	opText
	opAxis
	opInstance
	opSize
	opShaping
	opReset
)

var opMap = map[string]opcode{
	"quit":     opQuit,
	"exit":     opQuit,
	"help":     opHelp,
	"axes":     opAxes,
	"text":     opText,
	"axis":     opAxis,
	"instance": opInstance,
	"size":     opSize,
	"shaping":  opShaping,
	"reset":    opReset,
}

// Command is one parsed input line.
type Command struct {
	op opcode

	// text is the rest of the line for the text command, or the name
	// given to the instance command.
	text string

	// axis is an axis tag or index; index is -1 when a tag was given.
	axis  string
	index int

	number float64
	flag   bool
}

var errUsage = errors.New("usage")

func parseCommand(line string) (Command, error) {
	word, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	op, ok := opMap[strings.ToLower(word)]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q, try 'help'", word)
	}
	cmd := Command{op: op, index: -1}
	args := strings.Fields(rest)

	switch op {
	case opText:
		cmd.text = strings.TrimSpace(rest)
	case opAxis:
		if len(args) != 2 {
			return cmd, fmt.Errorf("%w: axis TAG|INDEX VALUE", errUsage)
		}
		cmd.axis = args[0]
		if i, err := strconv.Atoi(args[0]); err == nil {
			cmd.index = i
		}
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return cmd, fmt.Errorf("axis value %q: %w", args[1], err)
		}
		cmd.number = v
	case opInstance:
		name := strings.TrimSpace(rest)
		if name == "" {
			return cmd, fmt.Errorf("%w: instance N|NAME", errUsage)
		}
		if n, err := strconv.Atoi(name); err == nil {
			cmd.index = n
		} else {
			cmd.text = name
		}
	case opSize:
		if len(args) != 1 {
			return cmd, fmt.Errorf("%w: size PX", errUsage)
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return cmd, fmt.Errorf("size %q: %w", args[0], err)
		}
		cmd.number = v
	case opShaping:
		if len(args) != 1 {
			return cmd, fmt.Errorf("%w: shaping on|off", errUsage)
		}
		switch strings.ToLower(args[0]) {
		case "on":
			cmd.flag = true
		case "off":
			cmd.flag = false
		default:
			return cmd, fmt.Errorf("%w: shaping on|off", errUsage)
		}
	}
	return cmd, nil
}

// execute runs cmd and re-renders when the preview changed.
func (intp *Intp) execute(cmd Command) (quit bool, err error) {
	p := intp.preview
	switch cmd.op {
	case opQuit:
		return true, nil
	case opHelp:
		printHelp()
		return false, nil
	case opAxes:
		intp.printAxes()
		return false, nil
	case opText:
		p.SetText(cmd.text)
	case opAxis:
		if cmd.index >= 0 {
			err = p.SetAxisValue(cmd.index, cmd.number)
		} else {
			err = p.SetAxisValueByTag(cmd.axis, cmd.number)
		}
	case opInstance:
		if cmd.index >= 0 {
			err = p.ApplyNamedInstance(cmd.index)
		} else {
			err = p.ApplyNamedInstanceByName(cmd.text)
		}
	case opSize:
		err = p.SetPixelSize(cmd.number)
	case opShaping:
		p.SetShapingEnabled(cmd.flag)
	case opReset:
		err = p.SetCoordinates(nil)
	default:
		return false, fmt.Errorf("unknown command code: %d", cmd.op)
	}
	if err != nil {
		return false, err
	}
	intp.render()
	return false, nil
}

// render runs a pass and prints the canvas. Render errors are reported
// and leave the previous output in place.
func (intp *Intp) render() {
	canvas, err := intp.preview.RenderCanvas()
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	for _, line := range halfBlocks(canvas.Image, intp.columns) {
		fmt.Fprintln(intp.out, line)
	}
	if n := len(canvas.Failures); n > 0 {
		pterm.Warning.Printf("%d glyph(s) could not be drawn\n", n)
	}
	pterm.Printf("coords=%v size=%g shaping=%v\n",
		intp.preview.Coordinates(), intp.preview.PixelSize(), intp.preview.ShapingEnabled())
}

func (intp *Intp) printAxes() {
	axes := intp.preview.Axes()
	if len(axes) == 0 {
		pterm.Info.Println("static font: no variation axes")
		return
	}
	coords := intp.preview.Coordinates()
	data := [][]string{
		{"#", "Tag", "Name", "Min", "Default", "Max", "Value"},
	}
	for i, a := range axes {
		data = append(data, []string{
			strconv.Itoa(i),
			a.Tag,
			a.Name,
			formatValue(a.Minimum),
			formatValue(a.Default),
			formatValue(a.Maximum),
			formatValue(coords[i]),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	named := intp.preview.NamedInstances()
	if len(named) == 0 {
		return
	}
	data = [][]string{{"#", "Instance", "Coordinates"}}
	for i, n := range named {
		name := n.Name
		if name == "" {
			name = "-"
		}
		values := make([]string, len(n.Coords))
		for j, v := range n.Coords {
			values[j] = formatValue(v)
		}
		data = append(data, []string{strconv.Itoa(i), name, strings.Join(values, " ")})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

const helpText = `
  text TEXT            replace the preview text
  axis TAG|INDEX VALUE move an axis (values are clamped to its range)
  instance N|NAME      jump to a named instance of the font
  reset                move every axis back to its default
  size PX              set the font size in pixels per em
  shaping on|off       use shaped or isolated glyph advances
  axes                 list the variation axes and named instances
  help                 show this text
  quit                 leave
`

func printHelp() {
	pterm.Info.Println("Commands")
	pterm.Print(helpText)
}
