// Package textchunk splits long text into token-bounded chunks for models
// with limited input length. Splitting happens on sentence boundaries only;
// a sentence is never cut in half.
package textchunk

import "strings"

// TokenCounter reports the token cost of a piece of text. Token cost is
// model-specific, so the counter is supplied by the caller.
type TokenCounter func(text string) int

// WordCount is a TokenCounter that counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Chunk splits text into chunks whose token count stays within maxTokens.
// Sentence units are accumulated greedily in order; when adding the next
// unit would exceed the budget, the current chunk is closed and a new one
// starts with that unit. A single unit that by itself exceeds maxTokens
// still becomes its own chunk: oversized sentences are passed through for
// the downstream model to truncate rather than split mid-sentence.
//
// The result preserves input order, contains no empty chunks, and is
// deterministic for identical input and budget.
func Chunk(text string, maxTokens int, count TokenCounter) []string {
	units := Sentences(text)
	if len(units) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	currentTokens := 0

	for _, unit := range units {
		tokens := count(unit)
		if len(current) > 0 && currentTokens+tokens > maxTokens {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			currentTokens = 0
		}
		current = append(current, unit)
		currentTokens += tokens
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// Sentences splits text into sentence-like units on terminal punctuation
// and newlines. Terminal punctuation stays attached to its unit; units
// that are empty after trimming are dropped.
func Sentences(text string) []string {
	var units []string
	var buf strings.Builder

	flush := func() {
		unit := strings.TrimSpace(buf.String())
		buf.Reset()
		if unit != "" && strings.ContainsFunc(unit, isWordRune) {
			units = append(units, unit)
		}
	}

	for _, r := range text {
		switch r {
		case '.', '!', '?':
			buf.WriteRune(r)
			flush()
		case '\n':
			flush()
		default:
			buf.WriteRune(r)
		}
	}
	flush()

	return units
}

func isWordRune(r rune) bool {
	return r != '.' && r != '!' && r != '?' && r != ' ' && r != '\t'
}
