package components

import "testing"

func TestScramblePreservesShape(t *testing.T) {
	in := "Neon Drive — Stacja X"
	out := Scramble(in)

	if len([]rune(out)) != len([]rune(in)) {
		t.Errorf("length changed: %q -> %q", in, out)
	}
	for i, r := range []rune(in) {
		if r == ' ' && []rune(out)[i] != ' ' {
			t.Errorf("space at %d was scrambled", i)
		}
	}
}

func TestScrambleEmpty(t *testing.T) {
	if got := Scramble(""); got != "" {
		t.Errorf("Scramble(\"\") = %q", got)
	}
}
