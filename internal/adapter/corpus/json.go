// Package corpus loads the nested corpus source format and flattens it into
// the ordered passage list the rest of the pipeline works on.
package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"versesim/internal/domain"
)

// ErrInvalidFormat reports a corpus file that does not have the expected
// books → chapters → verses nesting. It aborts the build before any
// processing starts.
var ErrInvalidFormat = errors.New("corpus: invalid format")

// Wire shape: a top-level array of books, each with a "data" array of
// chapters, each with a "verses" array of {verse, text} objects. Absent
// arrays decode as nil slices and pointer strings distinguish an absent key
// from an empty value, so shape violations are detectable after decoding.
type bookEntry struct {
	Data []chapterEntry `json:"data"`
}

type chapterEntry struct {
	Verses []verseEntry `json:"verses"`
}

type verseEntry struct {
	Verse *string `json:"verse"`
	Text  *string `json:"text"`
}

// Loader reads corpus JSON files.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the corpus file at path and returns its passages in document
// order. The reference corpus files are written with a UTF-8 BOM, which is
// stripped before decoding.
func (l *Loader) Load(path string) ([]domain.Verse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return Parse(data)
}

// Parse flattens raw corpus JSON into ordered verses.
func Parse(data []byte) ([]domain.Verse, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var books []bookEntry
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var verses []domain.Verse
	for bi, book := range books {
		if book.Data == nil {
			return nil, fmt.Errorf("%w: book %d has no data array", ErrInvalidFormat, bi)
		}
		for ci, chapter := range book.Data {
			if chapter.Verses == nil {
				return nil, fmt.Errorf("%w: book %d chapter %d has no verses array", ErrInvalidFormat, bi, ci)
			}
			for vi, v := range chapter.Verses {
				if v.Verse == nil || v.Text == nil {
					return nil, fmt.Errorf("%w: book %d chapter %d verse %d missing verse or text field", ErrInvalidFormat, bi, ci, vi)
				}
				verses = append(verses, domain.Verse{Ref: *v.Verse, Text: *v.Text})
			}
		}
	}

	if len(verses) == 0 {
		return nil, fmt.Errorf("%w: corpus contains no verses", ErrInvalidFormat)
	}
	return verses, nil
}
