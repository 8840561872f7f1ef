package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent(t *testing.T) {
	th := Current()
	assert.Same(t, th, Current())
	assert.Equal(t, "catppuccin-mocha", th.Name)
	assert.Same(t, th.S(), th.S(), "styles are built once")
}

func TestBlend(t *testing.T) {
	tests := []struct {
		a, b string
		pos  float64
		want string
	}{
		{"#000000", "#ffffff", 0, "#000000"},
		{"#000000", "#ffffff", 1, "#ffffff"},
		{"#000000", "#ffffff", 0.5, "#808080"},
		{"#ff0000", "#0000ff", 2, "#0000ff"},
		{"bogus", "#ffffff", 0, "#000000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Blend(tt.a, tt.b, tt.pos), "%s..%s@%v", tt.a, tt.b, tt.pos)
	}
}

func TestGradient(t *testing.T) {
	assert.Nil(t, Gradient("#000000", "#ffffff", 0))
	assert.Equal(t, []string{"#123456"}, Gradient("#123456", "#ffffff", 1))

	g := Gradient("#000000", "#ffffff", 3)
	assert.Equal(t, []string{"#000000", "#808080", "#ffffff"}, g)
}

func TestApplyGradient(t *testing.T) {
	out := ApplyGradient("a b", "#000000", "#ffffff")
	assert.Contains(t, out, "a")
	assert.Contains(t, out, " ")
	assert.Empty(t, ApplyGradient("", "#000000", "#ffffff"))
}
