package port

import "versesim/internal/domain"

type CorpusLoader interface {
	Load(path string) ([]domain.Verse, error)
}
