package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "the cat", "the cat"},
		{"uppercase", "The CAT Sat", "the cat sat"},
		{"punctuation run", "Hello,   world!!", "hello world "},
		{"leading separators", "  -- x", " x"},
		{"underscore and digits", "snake_case 42nd", "snake_case 42nd"},
		{"tabs and newlines", "a\t\tb\r\nc", "a b c"},
		{"only separators", "?!. ,", " "},
		{"apostrophe splits", "don't", "don t"},
	}

	factory := NewNormalizerFactory()
	for _, typ := range []NormalizerType{DefaultNormalizerType, ASCIINormalizerType} {
		n := factory.CreateNormalizer(typ)
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.want, n.Normalize(tc.in))
			})
		}
	}
}

func TestNormalizeUnicode(t *testing.T) {
	n := NewDefaultNormalizer()
	assert.Equal(t, "café crème", n.Normalize("Café — Crème"))
	assert.Equal(t, "straße", n.Normalize("STRAßE"))
}

func TestNormalizersAgree(t *testing.T) {
	inputs := []string{
		"The quick brown fox jumps over the lazy dog.",
		"MiXeD__case; with... punctuation?! and 123 numbers",
		"Ünïcödé input falls back: ÀÉÎ",
		strings.Repeat("Lorem ipsum, dolor sit amet! ", 50),
		"\x00\x01control\x7fbytes",
	}
	def := NewDefaultNormalizer()
	ascii := NewASCIINormalizer()
	for _, in := range inputs {
		assert.Equal(t, def.Normalize(in), ascii.Normalize(in), "input %q", in)
	}
}

func TestNormalizedTextInvariant(t *testing.T) {
	out := NewASCIINormalizer().Normalize("A  B--C,,,D")
	assert.Equal(t, "a b c d", out)
	assert.NotContains(t, out, "  ")
	assert.Equal(t, strings.ToLower(out), out)
}

func TestParseNormalizerType(t *testing.T) {
	typ, err := ParseNormalizerType("ASCII")
	require.NoError(t, err)
	assert.Equal(t, ASCIINormalizerType, typ)

	typ, err = ParseNormalizerType("")
	require.NoError(t, err)
	assert.Equal(t, DefaultNormalizerType, typ)

	_, err = ParseNormalizerType("stemming")
	require.Error(t, err)
}
