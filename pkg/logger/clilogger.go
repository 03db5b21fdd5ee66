package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/tj/go-spin"
)

type CLILogger struct {
	w             io.Writer
	spinnerStopCh chan bool
	spinnerMsg    string
	spinnerArgs   []interface{}
	isSilent      bool
	isVerbose     bool
	isTerm        bool
}

func NewCLILogger(w io.Writer) *CLILogger {
	l := &CLILogger{w: w}
	if f, ok := w.(*os.File); ok {
		l.isTerm = isatty.IsTerminal(f.Fd())
	}
	return l
}

func (l *CLILogger) Silence() {
	if l == nil {
		return
	}
	l.isSilent = true
}

func (l *CLILogger) Verbose() {
	if l == nil {
		return
	}
	l.isVerbose = true
}

func (l *CLILogger) Initialize() {
	if l == nil || l.isSilent {
		return
	}

	fmt.Fprintln(l.w, "")
}

func (l *CLILogger) Finish() {
	if l == nil || l.isSilent {
		return
	}

	fmt.Fprintln(l.w, "")
}

func (l *CLILogger) Debug(msg string, args ...interface{}) {
	if l == nil || l.isSilent || !l.isVerbose {
		return
	}

	fmt.Fprintf(l.w, "    ")
	fmt.Fprintln(l.w, fmt.Sprintf(msg, args...))
	fmt.Fprintln(l.w, "")
}

func (l *CLILogger) Info(msg string, args ...interface{}) {
	if l == nil || l.isSilent {
		return
	}

	fmt.Fprintf(l.w, "    ")
	fmt.Fprintln(l.w, fmt.Sprintf(msg, args...))
	fmt.Fprintln(l.w, "")
}

func (l *CLILogger) ActionWithoutSpinner(msg string, args ...interface{}) {
	if l == nil || l.isSilent {
		return
	}

	if msg == "" {
		fmt.Fprintln(l.w, "")
		return
	}

	fmt.Fprintf(l.w, "  • ")
	fmt.Fprintln(l.w, fmt.Sprintf(msg, args...))
}

func (l *CLILogger) ChildActionWithoutSpinner(msg string, args ...interface{}) {
	if l == nil || l.isSilent {
		return
	}

	fmt.Fprintf(l.w, "    • ")
	fmt.Fprintln(l.w, fmt.Sprintf(msg, args...))
}

func (l *CLILogger) ActionWithSpinner(msg string, args ...interface{}) {
	if l == nil || l.isSilent {
		return
	}

	fmt.Fprintf(l.w, "  • ")
	fmt.Fprintf(l.w, msg, args...)

	l.spinnerMsg = msg
	l.spinnerArgs = args

	if l.isTerm {
		s := spin.New()

		fmt.Fprintf(l.w, " %s", s.Next())

		l.spinnerStopCh = make(chan bool)

		go func() {
			for {
				select {
				case <-l.spinnerStopCh:
					return
				case <-time.After(time.Millisecond * 100):
					fmt.Fprintf(l.w, "\r")
					fmt.Fprintf(l.w, "  • ")
					fmt.Fprintf(l.w, msg, args...)
					fmt.Fprintf(l.w, " %s", s.Next())
				}
			}
		}()
	}
}

func (l *CLILogger) ChildActionWithSpinner(msg string, args ...interface{}) {
	if l == nil || l.isSilent {
		return
	}

	fmt.Fprintf(l.w, "    • ")
	fmt.Fprintf(l.w, msg, args...)

	l.spinnerMsg = msg
	l.spinnerArgs = args

	if l.isTerm {
		s := spin.New()

		fmt.Fprintf(l.w, " %s", s.Next())

		l.spinnerStopCh = make(chan bool)

		go func() {
			for {
				select {
				case <-l.spinnerStopCh:
					return
				case <-time.After(time.Millisecond * 100):
					fmt.Fprintf(l.w, "\r")
					fmt.Fprintf(l.w, "    • ")
					fmt.Fprintf(l.w, msg, args...)
					fmt.Fprintf(l.w, " %s", s.Next())
				}
			}
		}()
	}
}

func (l *CLILogger) FinishChildSpinner() {
	if l == nil || l.isSilent {
		return
	}

	green := color.New(color.FgHiGreen)

	fmt.Fprintf(l.w, "\r")
	fmt.Fprintf(l.w, "    • ")
	fmt.Fprintf(l.w, l.spinnerMsg, l.spinnerArgs...)
	green.Fprintf(l.w, " ✓")
	fmt.Fprintf(l.w, "  \n")

	if l.isTerm {
		l.spinnerStopCh <- true
		close(l.spinnerStopCh)
	}
}

func (l *CLILogger) FinishSpinner() {
	if l == nil || l.isSilent {
		return
	}

	green := color.New(color.FgHiGreen)

	fmt.Fprintf(l.w, "\r")
	fmt.Fprintf(l.w, "  • ")
	fmt.Fprintf(l.w, l.spinnerMsg, l.spinnerArgs...)
	green.Fprintf(l.w, " ✓")
	fmt.Fprintf(l.w, "  \n")

	if l.isTerm {
		l.spinnerStopCh <- true
		close(l.spinnerStopCh)
	}
}

func (l *CLILogger) FinishSpinnerWithError() {
	if l == nil || l.isSilent {
		return
	}

	red := color.New(color.FgHiRed)

	fmt.Fprintf(l.w, "\r")
	fmt.Fprintf(l.w, "  • ")
	fmt.Fprintf(l.w, l.spinnerMsg, l.spinnerArgs...)
	red.Fprintf(l.w, " ✗")
	fmt.Fprintf(l.w, "  \n")

	if l.isTerm {
		l.spinnerStopCh <- true
		close(l.spinnerStopCh)
	}
}

// FinishSpinnerWithWarning if no color is provided, color.FgYellow will be used
func (l *CLILogger) FinishSpinnerWithWarning(c *color.Color) {
	if l == nil || l.isSilent {
		return
	}

	if c == nil {
		c = color.New(color.FgYellow)
	}

	fmt.Fprintf(l.w, "\r")
	fmt.Fprintf(l.w, "  • ")
	fmt.Fprintf(l.w, l.spinnerMsg, l.spinnerArgs...)
	c.Fprintf(l.w, " !")
	fmt.Fprintf(l.w, "  \n")

	if l.isTerm {
		l.spinnerStopCh <- true
		close(l.spinnerStopCh)
	}
}

func (l *CLILogger) Error(err error) {
	if l == nil || l.isSilent {
		return
	}

	c := color.New(color.FgHiRed)
	c.Fprintf(l.w, "  • ")
	c.Fprintln(l.w, err.Error())
}

func (l *CLILogger) Errorf(msg string, args ...interface{}) {
	if l == nil || l.isSilent {
		return
	}

	c := color.New(color.FgHiRed)
	c.Fprintf(l.w, "  • ")
	c.Fprintln(l.w, fmt.Sprintf(msg, args...))
}
