package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoundTripsKnownIdentifiers(t *testing.T) {
	known := []string{
		"c", "cpp", "go", "java", "kotlin",
		"node", "python", "rust", "typescript",
	}
	for _, id := range known {
		lang := Parse(id)
		assert.NotEqual(t, Unknown, lang, "identifier %q should not parse to Unknown", id)
		assert.Equal(t, id, lang.String(), "round-trip for %q", id)
	}
}

func TestParseUnknownIdentifiers(t *testing.T) {
	for _, id := range []string{"brainfuck", "", "Python", "C++", "golang"} {
		assert.Equal(t, Unknown, Parse(id), "identifier %q should map to Unknown", id)
	}
}
