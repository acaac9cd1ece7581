package analyzer

import (
	"strings"
	"unicode"
)

// The one lexical substitution the pipeline applies: both divine-name
// renderings must resolve to the same embedding, so tokens carrying the
// tetragrammaton form are rewritten before table lookup.
const (
	substFrom = "Yahweh"
	substTo   = "God"
)

// punctuation is the ASCII punctuation set stripped from passage text
// before word splitting.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Tokenizer turns raw passage text into the normalized token sequence the
// vector builder consumes. Matching against the stopword set and the
// embedding table is exact and case-sensitive, so no case folding happens
// here.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a Tokenizer using the stopword set for the given
// locale. An empty locale selects English.
func NewTokenizer(locale string) (*Tokenizer, error) {
	stops, err := StopwordSet(locale)
	if err != nil {
		return nil, err
	}
	return &Tokenizer{stopwords: stops}, nil
}

// Tokenize strips punctuation, splits the text on word boundaries, drops
// stopwords and applies the lexical substitution, in that order. Stopword
// matching happens before substitution, against the original form.
func (t *Tokenizer) Tokenize(text string) []string {
	words := splitWords(stripPunctuation(text))
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		if _, isStop := t.stopwords[word]; isStop {
			continue
		}
		if strings.Contains(word, substFrom) {
			word = strings.ReplaceAll(word, substFrom, substTo)
		}
		tokens = append(tokens, word)
	}

	return tokens
}

var punctTable = func() [128]bool {
	var tbl [128]bool
	for _, r := range punctuation {
		tbl[r] = true
	}
	return tbl
}()

func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if r < 128 && punctTable[r] {
			return -1
		}
		return r
	}, text)
}

// splitWords splits text into words on unicode boundaries. Letters and
// digits extend the current word, anything else ends it.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}
