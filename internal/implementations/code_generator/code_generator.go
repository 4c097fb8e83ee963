package codegenerator

import (
	"math/rand"
	"tasktracker/internal/core/domain/user"
	"time"
)

const codeLength = 6

// Generator produces short uppercase alphanumeric codes meant to be typed
// in from an email by hand.
type Generator struct {
	chars []rune
}

func NewGenerator() *Generator {
	rand.Seed(time.Now().UnixNano())
	return &Generator{
		chars: []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"),
	}
}

func (g *Generator) GenerateResetCode() user.ResetCode {
	return user.ResetCode(g.generate())
}

func (g *Generator) GenerateActivationCode() user.ActivationCode {
	return user.ActivationCode(g.generate())
}

func (g *Generator) generate() string {
	b := make([]rune, codeLength)
	for i := range b {
		b[i] = g.chars[rand.Intn(len(g.chars))]
	}
	return string(b)
}
