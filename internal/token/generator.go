package token

import (
	"crypto/rand"
	"fmt"
)

// Alphabet drops 0/O/1/I/L so hand-transcribed tokens survive bad handwriting.
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const DefaultLength = 8

type Generator struct {
	length int
}

func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{length: length}
}

// New draws a token from crypto/rand. Uniqueness is the caller's problem;
// the store's unique index is the final arbiter.
func (g *Generator) New() (string, error) {
	buf := make([]byte, g.length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = Alphabet[int(b)%len(Alphabet)]
	}

	return string(buf), nil
}

func (g *Generator) Length() int {
	return g.length
}
