package domain

// Verse is one corpus passage: a stable reference and its original text.
// The display copy of the corpus is a []Verse in document order; that order
// defines the corpus index used by the similarity matrix.
type Verse struct {
	Ref  string
	Text string
}

type ScoredVerse struct {
	Verse Verse
	Score float64
}

// BuildStats summarizes one build of the similarity index.
type BuildStats struct {
	Verses        int
	Tokens        int
	ResolvedWords int
	MissingWords  int
	VectorLen     int
	MatrixBytes   int64
}
