package mock

import "github.com/pf2fr/grimoire"

var _ grimoire.Converter = (*Converter)(nil)

// Converter is a mock implementation of grimoire.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
