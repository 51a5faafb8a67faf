// Package format deals with what the user sees: the extracted lines and the
// colors of diagnostic output.
package format

// A Colorizer wraps parts of diagnostic lines in ANSI color codes.  A nil
// *Colorizer leaves everything uncolored.
type Colorizer struct {
	EventColorCode []byte
	ValueColorCode []byte
	ErrorColorCode []byte
	ResetCode      []byte
}

// Event colors the name of a grammar event.
func (c *Colorizer) Event(s string) string {
	if c == nil {
		return s
	}
	return c.wrap(c.EventColorCode, s)
}

// Value colors the payload of an event.
func (c *Colorizer) Value(s string) string {
	if c == nil {
		return s
	}
	return c.wrap(c.ValueColorCode, s)
}

// Error colors an error message.
func (c *Colorizer) Error(s string) string {
	if c == nil {
		return s
	}
	return c.wrap(c.ErrorColorCode, s)
}

func (c *Colorizer) wrap(code []byte, s string) string {
	return string(code) + s + string(c.ResetCode)
}

// Some color ANSI codes
var (
	Reset = []byte("\033[0m")

	Yellow = []byte("\033[33m")

	BrightBlue = []byte("\033[34;1m")
	BrightRed  = []byte("\033[31;1m")
)

// DefaultColorizer is used when diagnostics go to a terminal.
var DefaultColorizer = Colorizer{
	EventColorCode: BrightBlue,
	ValueColorCode: Yellow,
	ErrorColorCode: BrightRed,
	ResetCode:      Reset,
}
