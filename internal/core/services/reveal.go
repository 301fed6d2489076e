package services

import (
	"strings"
	"unicode"
)

// RevealFrames returns the word-by-word display snapshots of text.
// Each frame is a prefix of text ending after a word; the last frame is
// text itself, so trailing whitespace is kept.
func RevealFrames(text string) []string {
	var frames []string
	inWord := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if inWord && space {
			frames = append(frames, text[:i])
		}
		inWord = !space
	}
	if len(frames) == 0 || frames[len(frames)-1] != text {
		frames = append(frames, text)
	}
	return frames
}

// Ellipsis returns the pending-placeholder animation frame for step:
// ".", "..", "..." repeating.
func Ellipsis(step int) string {
	n := step % 3
	if n < 0 {
		n += 3
	}
	return strings.Repeat(".", n+1)
}
