// Package render formats entries for terminal display: a compact row
// for result lists and a full per-category detail view.
package render

// ANSI escape codes.
const (
	codeReset     = "\033[0m"
	codeBold      = "\033[1m"
	codeDim       = "\033[2m"
	codeRed       = "\033[91m"
	codeGreen     = "\033[92m"
	codeYellow    = "\033[93m"
	codeBlue      = "\033[94m"
	codeMagenta   = "\033[95m"
	codeCyan      = "\033[96m"
	codeWhite     = "\033[97m"
	codeHighlight = "\033[48;5;236m"
	codeOrange    = "\033[38;5;208m"
)

// Theme applies ANSI styling to display fragments. A disabled theme
// passes text through untouched, for pipes and dumb terminals.
type Theme struct {
	enabled bool
}

// NewTheme creates a Theme. Styling is emitted only when enabled.
func NewTheme(enabled bool) *Theme {
	return &Theme{enabled: enabled}
}

func (t *Theme) wrap(code, s string) string {
	if !t.enabled || s == "" {
		return s
	}
	return code + s + codeReset
}

func (t *Theme) Bold(s string) string      { return t.wrap(codeBold, s) }
func (t *Theme) Dim(s string) string       { return t.wrap(codeDim, s) }
func (t *Theme) Red(s string) string       { return t.wrap(codeRed, s) }
func (t *Theme) Green(s string) string     { return t.wrap(codeGreen, s) }
func (t *Theme) Yellow(s string) string    { return t.wrap(codeYellow, s) }
func (t *Theme) Blue(s string) string      { return t.wrap(codeBlue, s) }
func (t *Theme) Magenta(s string) string   { return t.wrap(codeMagenta, s) }
func (t *Theme) Cyan(s string) string      { return t.wrap(codeCyan, s) }
func (t *Theme) White(s string) string     { return t.wrap(codeWhite, s) }
func (t *Theme) Orange(s string) string    { return t.wrap(codeOrange, s) }
func (t *Theme) Highlight(s string) string { return t.wrap(codeHighlight+codeBold, s) }
