package commitmsg

import (
	"strings"
	"unicode"
)

// imperativeExceptions are verbs whose base form already ends in -s, -ed
// or -ing.
var imperativeExceptions = map[string]bool{
	"alias": true, "bias": true, "canvas": true, "focus": true, "redis": true,
	"embed": true, "exceed": true, "feed": true, "need": true, "proceed": true,
	"seed": true, "shed": true, "speed": true, "succeed": true,
	"bring": true, "ping": true, "ring": true, "sing": true, "string": true,
	"swing": true, "sting": true,
}

// nonImperative applies a suffix heuristic to the first word of subject and
// returns that word when it looks like "Added", "Adding" or "Adds".
func nonImperative(subject string) (string, bool) {
	fields := strings.Fields(subject)
	if len(fields) == 0 {
		return "", false
	}
	word := strings.TrimFunc(fields[0], func(r rune) bool { return !unicode.IsLetter(r) })
	w := strings.ToLower(word)
	if len(w) < 4 || imperativeExceptions[w] {
		return "", false
	}
	switch {
	case strings.HasSuffix(w, "ing"),
		strings.HasSuffix(w, "ed"),
		strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us"):
		return word, true
	}
	return "", false
}
