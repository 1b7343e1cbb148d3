package ui

import (
	"image/color"
	"testing"
)

func TestColorHexRoundTrip(t *testing.T) {
	tests := []struct {
		c    color.Color
		want string
	}{
		{color.NRGBA{R: 255, A: 255}, "#ff0000"},
		{color.NRGBA{G: 255, A: 255}, "#00ff00"},
		{color.NRGBA{B: 255, A: 255}, "#0000ff"},
		{color.NRGBA{R: 255, G: 255, A: 255}, "#ffff00"},
		{color.Black, "#000000"},
	}
	for _, tt := range tests {
		got := colorToHex(tt.c)
		if got != tt.want {
			t.Errorf("colorToHex = %q, want %q", got, tt.want)
		}
		back := hexToColor(got)
		if colorToHex(back) != tt.want {
			t.Errorf("round trip of %q gave %q", tt.want, colorToHex(back))
		}
	}
}

func TestHexToColorBadInputFallsBack(t *testing.T) {
	for _, s := range []string{"", "red", "#12"} {
		if hexToColor(s) != color.Black {
			t.Errorf("hexToColor(%q) should fall back to black", s)
		}
	}
}
