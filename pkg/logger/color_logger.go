package logger

import (
	"fmt"
	"log"

	"github.com/fatih/color"
)

type ColorLogger struct {
	*log.Logger
	color   bool
	verbose bool
}

type Color color.Attribute

const (
	ColorBlack  = Color(color.FgBlack)
	ColorRed    = Color(color.FgRed)
	ColorGreen  = Color(color.FgGreen)
	ColorYellow = Color(color.FgYellow)
	ColorBlue   = Color(color.FgBlue)
	ColorReset  = Color(color.Reset)
)

func NewColorLogger(lg *log.Logger) *ColorLogger {
	c := ColorLogger{
		Logger: lg,
		color:  !color.NoColor,
	}
	return &c
}

// SetColor toggles ANSI colouring for this logger only.
func (c *ColorLogger) SetColor(enabled bool) *ColorLogger {
	c.color = enabled
	return c
}

// SetVerbose enables Debugf output.
func (c *ColorLogger) SetVerbose(enabled bool) *ColorLogger {
	c.verbose = enabled
	return c
}

func (c *ColorLogger) Verbose() bool { return c.verbose }

func (c *ColorLogger) paint(cl Color, s string) string {
	p := color.New(color.Attribute(cl))
	if c.color {
		p.EnableColor()
	} else {
		p.DisableColor()
	}
	return p.Sprint(s)
}

func (c *ColorLogger) Printcf(cl Color, format string, args ...interface{}) {
	c.Print(c.paint(cl, fmt.Sprintf(format, args...)))
}

func (c *ColorLogger) Printc(cl Color, s string) {
	c.Print(c.paint(cl, s))
}

func (c *ColorLogger) Infof(format string, args ...interface{}) {
	c.Printcf(ColorGreen, format, args...)
}

func (c *ColorLogger) Warnf(format string, args ...interface{}) {
	c.Printcf(ColorYellow, format, args...)
}

func (c *ColorLogger) Errorf(format string, args ...interface{}) {
	c.Printcf(ColorRed, format, args...)
}

func (c *ColorLogger) Debugf(format string, args ...interface{}) {
	if !c.verbose {
		return
	}
	c.Printcf(ColorBlue, format, args...)
}
