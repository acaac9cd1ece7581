package port

// Resolver maps a single word to its pretrained embedding vector.
type Resolver interface {
	// Resolve returns the vector for word and whether the word is present.
	// A miss is an expected outcome, not an error; the caller decides the
	// fallback policy. Returned slices must not be mutated.
	Resolve(word string) ([]float32, bool)

	// Dimension returns the per-word vector dimension.
	Dimension() int
}
