package components

import "math/rand"

var glitchGlyphs = []rune("░▒▓█▚▞▟▙#%&@")

// Scramble replaces a portion of the runes with block glyphs, producing
// the brief distortion shown while a track transition settles. Spaces are
// kept so the line keeps its shape.
func Scramble(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r == ' ' {
			continue
		}
		if rand.Intn(3) == 0 {
			runes[i] = glitchGlyphs[rand.Intn(len(glitchGlyphs))]
		}
	}
	return string(runes)
}
