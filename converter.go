package grimoire

// Converter transforms an HTML description fragment into text suitable
// for terminal display.
type Converter interface {
	Convert(html string) (string, error)
}
