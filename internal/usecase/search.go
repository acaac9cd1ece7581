package usecase

import (
	"versesim/internal/domain"
	"versesim/internal/port"
)

// SearchUseCase answers similarity queries by joining index positions
// back to their passages. verses must be the corpus the index was built
// over, in build order.
type SearchUseCase struct {
	index        port.SimilarityIndex
	verses       []domain.Verse
	defaultCount int
}

// NewSearchUseCase creates a search use case. defaultCount is used for
// queries that do not ask for an explicit result count; non-positive
// values fall back to 10.
func NewSearchUseCase(index port.SimilarityIndex, verses []domain.Verse, defaultCount int) *SearchUseCase {
	if defaultCount <= 0 {
		defaultCount = 10
	}
	return &SearchUseCase{
		index:        index,
		verses:       verses,
		defaultCount: defaultCount,
	}
}

// Similar returns the count most similar passages to ref, best first.
// A non-positive count selects the configured default. Unknown
// references surface index.ErrUnknownPassage.
func (u *SearchUseCase) Similar(ref string, count int) ([]domain.ScoredVerse, error) {
	if count <= 0 {
		count = u.defaultCount
	}

	neighbors, err := u.index.TopK(ref, count)
	if err != nil {
		return nil, err
	}

	results := make([]domain.ScoredVerse, len(neighbors))
	for i, nb := range neighbors {
		results[i] = domain.ScoredVerse{
			Verse: u.verses[nb.Index],
			Score: nb.Score,
		}
	}
	return results, nil
}

// Len returns the number of searchable passages.
func (u *SearchUseCase) Len() int {
	return len(u.verses)
}
