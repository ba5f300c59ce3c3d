package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases", input: "Elsa", want: "elsa"},
		{name: "trims whitespace", input: "  frozen queen  ", want: "frozen queen"},
		{name: "mixed case and whitespace", input: "  Frozen QUEEN ", want: "frozen queen"},
		{name: "empty string", input: "", want: ""},
		{name: "whitespace only", input: "   ", want: ""},
		{name: "interior whitespace kept", input: "queen  elsa", want: "queen  elsa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeQuery(tt.input))
		})
	}
}

func TestNormalizeQueryIdempotent(t *testing.T) {
	inputs := []string{"Elsa", "  Frozen Queen ", "maleficent", ""}
	for _, input := range inputs {
		once := NormalizeQuery(input)
		assert.Equal(t, once, NormalizeQuery(once))
	}
}

func TestNormalizeQueryEquivalenceClasses(t *testing.T) {
	// queries that normalize identically must hit the same cache key
	assert.Equal(t, NormalizeQuery("Elsa"), NormalizeQuery(" elsa "))
	assert.Equal(t, NormalizeQuery("FROZEN QUEEN"), NormalizeQuery("frozen queen"))
}
