package port

// Neighbor is one similarity match: the corpus index of the matched passage
// and its cosine score against the queried passage.
type Neighbor struct {
	Index int
	Score float64
}

// SimilarityIndex answers nearest-neighbor queries over the corpus. The
// queried passage itself is never part of the result.
type SimilarityIndex interface {
	// TopK returns up to k neighbors of ref, most similar first. Ties are
	// broken by ascending corpus index. k larger than the remaining corpus
	// returns everything; k <= 0 is an error, callers resolve defaults
	// before querying.
	TopK(ref string, k int) ([]Neighbor, error)

	// Len returns the number of indexed passages.
	Len() int
}
