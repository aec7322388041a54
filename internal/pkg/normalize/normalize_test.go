package normalize

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "only spaces", in: "   \t\n ", want: ""},
		{name: "lowercase word", in: "python", want: "Python"},
		{name: "mixed case", in: "jAVA", want: "Java"},
		{name: "location with runs of spaces", in: "  new   york ", want: "New York"},
		{name: "tabs and newlines", in: "machine\tlearning\nops", want: "Machine Learning Ops"},
		{name: "nul stripped", in: "go\x00lang", want: "Golang"},
		{name: "zero width stripped", in: "\ufeffre\u200bact\u200d", want: "React"},
		{name: "punctuation kept", in: "node.js", want: "Node.js"},
		{name: "symbols kept", in: "c++", want: "C++"},
		{name: "no stemming", in: "JS", want: "Js"},
		{name: "unicode letters", in: "ÉCOLE   polytechnique", want: "École Polytechnique"},
		{name: "decomposed accent composes", in: "e\u0301cole", want: "École"},
		{name: "accent split by zero width", in: "cafe\u200b\u0301", want: "Café"},
		{name: "accent split by nul", in: "e\x00\u0301cole", want: "École"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.in))
		})
	}
}

func TestString_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"python",
		"  new   york ",
		"ſtraße",
		"ıstanbul",
		"ǅemal",
		"σοφία ς",
		"\x00\u200b\ufeff",
		"\xff\xfeinvalid",
		"软件工程师 go",
		"mIxEd\u00a0CaSe",
		"cafe\u200b\u0301",
		"e\x00\u0301cole",
		"a\ufeff\u0308b",
	}
	for _, in := range inputs {
		once := String(in)
		assert.Equal(t, once, String(once), "input %q", in)
		assert.True(t, utf8.ValidString(once), "input %q", in)
	}
}

func TestString_BothSidesAgree(t *testing.T) {
	assert.Equal(t, String("New York"), String("  new   york "))
	assert.Equal(t, String("Python"), String("python"))
	assert.NotEqual(t, String("JS"), String("JavaScript"))
	assert.Equal(t, String("café"), String("cafe\u200b\u0301"))
}

func TestStrings_DropsEmpty(t *testing.T) {
	got := Strings([]string{"go", "  ", "\u200b", "sql"})
	assert.Equal(t, []string{"Go", "Sql"}, got)
}
