package embedding

import "versesim/internal/port"

// Builder concatenates word vectors into the fixed-length passage vector.
// The first maxTokens tokens each contribute one dimension-sized block,
// in token order. Tokens missing from the table leave their block all
// zeros, as does any unfilled tail when a passage has fewer tokens than
// maxTokens. Every vector is exactly maxTokens*Dimension long so the
// index never sees ragged input.
type Builder struct {
	resolver  port.Resolver
	maxTokens int
}

// NewBuilder creates a Builder over resolver. maxTokens must be positive.
func NewBuilder(resolver port.Resolver, maxTokens int) *Builder {
	return &Builder{resolver: resolver, maxTokens: maxTokens}
}

// Embed builds the passage vector for a token sequence. Tokens beyond
// the window are ignored.
func (b *Builder) Embed(tokens []string) []float32 {
	dim := b.resolver.Dimension()
	vec := make([]float32, b.maxTokens*dim)

	n := len(tokens)
	if n > b.maxTokens {
		n = b.maxTokens
	}
	for i := 0; i < n; i++ {
		if components, ok := b.resolver.Resolve(tokens[i]); ok {
			copy(vec[i*dim:(i+1)*dim], components)
		}
	}

	return vec
}

// Length returns the passage vector length, maxTokens times the table
// dimension.
func (b *Builder) Length() int {
	return b.maxTokens * b.resolver.Dimension()
}
