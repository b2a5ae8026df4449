package sentiment

import "strings"

// negationWindow is how many tokens before a matched term a negation
// word still inverts it.
const negationWindow = 3

// Score runs the rule engine over one comment and returns the signed
// sentiment score S. Confidence is |S|; the router escalates to the
// external classifier when |S| < 3.
//
// Each lexicon entry contributes at most once (presence, not frequency).
// A negation word within the window before a matched term inverts that
// term's sign and halves its magnitude, so weak negations don't produce
// over-confident flips.
func Score(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var score float64
	for _, e := range lexicon {
		pos, ok := findPhrase(tokens, e.phrase)
		if !ok {
			continue
		}
		contribution := e.weight
		if negatedBefore(tokens, pos) {
			contribution = -contribution / 2
		}
		score += contribution
	}
	return score
}

// tokenize lowercases and splits text into word tokens, keeping inner
// apostrophes so contractions like "don't" survive.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return false
		}
		return r != '\'' && r != '’'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, "’", "'")
		f = strings.Trim(f, "'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// findPhrase returns the token index where the (possibly multi-word)
// phrase first matches, or false if it never does.
func findPhrase(tokens []string, phrase string) (int, bool) {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return 0, false
	}
	for i := 0; i+len(words) <= len(tokens); i++ {
		match := true
		for j, w := range words {
			if tokens[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return i, true
		}
	}
	return 0, false
}

func negatedBefore(tokens []string, pos int) bool {
	start := pos - negationWindow
	if start < 0 {
		start = 0
	}
	for i := start; i < pos; i++ {
		if negations[tokens[i]] {
			return true
		}
	}
	return false
}
