package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/unibidi/bidi"
	"github.com/pterm/pterm"
)

// tracer traces with key 'uax.bidi'
func tracer() tracing.Trace {
	return tracing.Select("uax.bidi")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.uax.bidi":  "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	dirname := flag.String("dir", "auto", "Paragraph direction [ltr|rtl|wltr|wrtl|auto|env]")
	upper := flag.Bool("upper", false, "Treat UPPERCASE letters as right-to-left")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)
	pterm.Info.Println("Welcome to the Bidi CLI")
	//
	repl, err := readline.New("bidi > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, upper: *upper}
	if err := intp.setDirection(*dirname); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	pterm.Info.Println("Quit with <ctrl>D, enter :help for a list of commands")
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl    *readline.Instance
	dir     bidi.ParagraphDirection
	upper   bool
	details bool
}

func (intp *Intp) String() string {
	return fmt.Sprintf("( dir=%s upper=%v details=%v )", intp.dir, intp.upper, intp.details)
}

func (intp *Intp) options() []bidi.Option {
	return []bidi.Option{bidi.Testing(intp.upper)}
}

// REPL starts interactive mode. Lines starting with a colon are commands,
// everything else is taken as a paragraph of text.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			if err := intp.reorder(line); err != nil {
				pterm.Error.Println(err)
			}
			continue
		}
		quit, err := intp.execute(strings.Fields(line[1:]))
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

func (intp *Intp) execute(cmd []string) (bool, error) {
	if len(cmd) == 0 {
		return false, nil
	}
	arg := ""
	if len(cmd) > 1 {
		arg = cmd[1]
	}
	tracer().Debugf("command %q, argument %q", cmd[0], arg)
	switch strings.ToLower(cmd[0]) {
	case "quit", "q":
		return true, nil
	case "dir":
		return false, intp.setDirection(arg)
	case "upper":
		intp.upper = arg != "off"
	case "details":
		intp.details = arg != "off"
	case "help", "h", "?":
		help()
	default:
		return false, fmt.Errorf("unknown command :%s", cmd[0])
	}
	return false, nil
}

func (intp *Intp) setDirection(name string) error {
	switch strings.ToLower(name) {
	case "ltr":
		intp.dir = bidi.LeftToRight
	case "rtl":
		intp.dir = bidi.RightToLeft
	case "wltr":
		intp.dir = bidi.WeakLeftToRight
	case "wrtl":
		intp.dir = bidi.WeakRightToLeft
	case "auto", "":
		intp.dir = bidi.Neutral
	case "env":
		intp.dir = bidi.DirectionFromEnvironment()
	default:
		return fmt.Errorf("invalid paragraph direction: %s", name)
	}
	tracer().Infof("paragraph direction is %s", intp.dir)
	return nil
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	Enter a line of text to see it in visual order.

	:dir ltr|rtl|wltr|wrtl|auto|env   set the paragraph direction
	:upper on|off                     treat UPPERCASE letters as right-to-left
	:details on|off                   print classes and levels of every character
	:quit                             leave the CLI
	`)
}
