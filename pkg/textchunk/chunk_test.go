package textchunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTwoSentenceBudget(t *testing.T) {
	text := "Sentence one. Sentence two. Sentence three."
	budget := WordCount("Sentence one. Sentence two.")

	chunks := Chunk(text, budget, WordCount)

	require.Equal(t, []string{"Sentence one. Sentence two.", "Sentence three."}, chunks)
}

func TestChunkRespectsBudget(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxTokens int
	}{
		{"single sentence", "One short sentence.", 10},
		{"many small sentences", "A b. C d. E f. G h. I j. K l.", 4},
		{"newline separated", "first line\nsecond line\nthird line", 2},
		{"mixed punctuation", "Really? Yes! Quite sure. Definitely.", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Chunk(tt.text, tt.maxTokens, WordCount)
			require.NotEmpty(t, chunks)
			for _, chunk := range chunks {
				assert.NotEmpty(t, chunk)
				assert.LessOrEqual(t, WordCount(chunk), tt.maxTokens,
					"chunk %q exceeds budget", chunk)
			}
		})
	}
}

func TestChunkOversizedUnitStandsAlone(t *testing.T) {
	text := "Short one. This single sentence has far too many words to ever fit. Short two."

	chunks := Chunk(text, 3, WordCount)

	require.Len(t, chunks, 3)
	assert.Equal(t, "Short one.", chunks[0])
	// The oversized sentence is never dropped or split, it just occupies
	// its own chunk.
	assert.Equal(t, "This single sentence has far too many words to ever fit.", chunks[1])
	assert.Equal(t, "Short two.", chunks[2])
}

func TestChunkCoverage(t *testing.T) {
	text := "Alpha beta. Gamma delta epsilon. Zeta. Eta theta iota kappa. Lambda mu."
	units := Sentences(text)

	for _, budget := range []int{1, 2, 3, 5, 100} {
		chunks := Chunk(text, budget, WordCount)

		var reassembled []string
		for _, chunk := range chunks {
			reassembled = append(reassembled, Sentences(chunk)...)
		}
		assert.Equal(t, units, reassembled, "budget %d reordered or dropped units", budget)
	}
}

func TestChunkDeterministic(t *testing.T) {
	text := strings.Repeat("Some sentence with words. ", 40)
	first := Chunk(text, 16, WordCount)
	second := Chunk(text, 16, WordCount)
	assert.Equal(t, first, second)
}

func TestChunkEmptyInput(t *testing.T) {
	assert.Nil(t, Chunk("", 10, WordCount))
	assert.Nil(t, Chunk("   \n\n ...  ", 10, WordCount))
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"terminal punctuation", "One. Two! Three?", []string{"One.", "Two!", "Three?"}},
		{"newlines", "line one\nline two", []string{"line one", "line two"}},
		{"trailing fragment", "Complete. trailing words", []string{"Complete.", "trailing words"}},
		{"punctuation only", "...", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sentences(tt.text))
		})
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 3, WordCount("  one two   three "))
}
