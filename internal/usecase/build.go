package usecase

import (
	"fmt"

	"versesim/internal/adapter/embedding"
	"versesim/internal/adapter/index"
	"versesim/internal/domain"
	"versesim/internal/port"
)

// BuildUseCase turns a corpus file into a queryable similarity index.
// The whole pipeline runs in one pass: normalize the corpus, tokenize
// every passage, build fixed-length vectors and compute the pairwise
// matrix. Any failure abandons the build; there is no partial index.
type BuildUseCase struct {
	loader    port.CorpusLoader
	tokenizer port.Tokenizer
	resolver  port.Resolver
	maxTokens int

	// Progress, when set, receives per-item completion for the
	// "vectorize" and "similarity" stages.
	Progress func(stage string, done, total int)
}

// NewBuildUseCase creates a build use case. maxTokens is the passage
// vector window.
func NewBuildUseCase(
	loader port.CorpusLoader,
	tokenizer port.Tokenizer,
	resolver port.Resolver,
	maxTokens int,
) *BuildUseCase {
	return &BuildUseCase{
		loader:    loader,
		tokenizer: tokenizer,
		resolver:  resolver,
		maxTokens: maxTokens,
	}
}

// BuildResult carries everything the query side needs: the passages in
// corpus order, the index whose positions refer into them, and build
// statistics.
type BuildResult struct {
	Verses []domain.Verse
	Index  *index.Index
	Stats  domain.BuildStats
}

// Build loads the corpus at path and computes its similarity index.
func (u *BuildUseCase) Build(path string) (*BuildResult, error) {
	verses, err := u.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	counting := &countingResolver{inner: u.resolver}
	builder := embedding.NewBuilder(counting, u.maxTokens)

	refs := make([]string, len(verses))
	vectors := make([][]float32, len(verses))
	totalTokens := 0
	for i, verse := range verses {
		tokens := u.tokenizer.Tokenize(verse.Text)
		totalTokens += len(tokens)
		refs[i] = verse.Ref
		vectors[i] = builder.Embed(tokens)
		u.report("vectorize", i+1, len(verses))
	}

	idx, err := index.Build(refs, vectors, func(done, total int) {
		u.report("similarity", done, total)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build similarity index: %w", err)
	}

	n := len(verses)
	stats := domain.BuildStats{
		Verses:        n,
		Tokens:        totalTokens,
		ResolvedWords: counting.resolved,
		MissingWords:  counting.missing,
		VectorLen:     builder.Length(),
		MatrixBytes:   int64(n) * int64(n) * 4,
	}

	return &BuildResult{Verses: verses, Index: idx, Stats: stats}, nil
}

func (u *BuildUseCase) report(stage string, done, total int) {
	if u.Progress != nil {
		u.Progress(stage, done, total)
	}
}

// countingResolver tallies table hits and misses for the tokens the
// vector builder actually consumes. The embed loop is single-goroutine,
// so plain counters are enough.
type countingResolver struct {
	inner    port.Resolver
	resolved int
	missing  int
}

func (c *countingResolver) Resolve(word string) ([]float32, bool) {
	vec, ok := c.inner.Resolve(word)
	if ok {
		c.resolved++
	} else {
		c.missing++
	}
	return vec, ok
}

func (c *countingResolver) Dimension() int {
	return c.inner.Dimension()
}
