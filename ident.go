package uses

import "math/rand/v2"

const identAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const identLength = 10

// IdentSource produces fresh idents for anonymous structured options. The
// default source draws 10 characters uniformly from the 62-symbol alphabet;
// collisions are never checked and treated as negligible.
type IdentSource interface {
	NewIdent() string
}

// IdentSourceFunc adapts a function to IdentSource.
type IdentSourceFunc func() string

// NewIdent dispatches to the underlying function.
func (f IdentSourceFunc) NewIdent() string {
	if f == nil {
		return ""
	}
	return f()
}

type randomIdentSource struct{}

func (randomIdentSource) NewIdent() string {
	buf := make([]byte, identLength)
	for i := range buf {
		buf[i] = identAlphabet[rand.IntN(len(identAlphabet))]
	}
	return string(buf)
}
