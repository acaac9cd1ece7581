// Package index holds the precomputed passage similarity matrix and
// answers nearest-neighbor queries against it.
package index

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"versesim/internal/port"
)

// ErrUnknownPassage reports a query for a reference the index was not
// built with.
var ErrUnknownPassage = errors.New("index: unknown passage")

// Index is an n by n cosine similarity matrix over passage vectors,
// stored row-major as float32. It is immutable after Build and safe for
// concurrent queries.
type Index struct {
	n      int
	byRef  map[string]int
	matrix []float32
}

// Build computes the full pairwise similarity matrix for the given
// passages. refs and vectors run in corpus order and must be the same
// length; refs must be unique and vectors must share one length.
//
// Cosine similarity of any pair involving an all-zero vector is 0,
// including that vector with itself, so the diagonal is 1 exactly for
// passages with at least one resolved word. Rows are computed across
// runtime.NumCPU workers; each pair is computed once with a fixed
// accumulation order, so rebuilding over the same input yields an
// identical matrix.
//
// progress may be nil. When set it is called once per completed row,
// possibly from concurrent workers.
func Build(refs []string, vectors [][]float32, progress func(done, total int)) (*Index, error) {
	n := len(refs)
	if n == 0 {
		return nil, errors.New("index: no passages")
	}
	if len(vectors) != n {
		return nil, fmt.Errorf("index: %d refs but %d vectors", n, len(vectors))
	}

	dim := len(vectors[0])
	byRef := make(map[string]int, n)
	for i, ref := range refs {
		if len(vectors[i]) != dim {
			return nil, fmt.Errorf("index: vector %d has length %d, want %d", i, len(vectors[i]), dim)
		}
		if _, dup := byRef[ref]; dup {
			return nil, fmt.Errorf("index: duplicate passage %q", ref)
		}
		byRef[ref] = i
	}

	norms := make([]float64, n)
	for i, vec := range vectors {
		var sum float64
		for _, v := range vec {
			sum += float64(v) * float64(v)
		}
		norms[i] = math.Sqrt(sum)
	}

	matrix := make([]float32, n*n)

	// Worker i fills cells (i,j) and (j,i) for j > i plus its own
	// diagonal cell, so no cell is written twice.
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}

	rows := make(chan int)
	var done atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				fillRow(matrix, vectors, norms, n, i)
				if progress != nil {
					progress(int(done.Add(1)), n)
				}
			}
		}()
	}
	for i := 0; i < n; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()

	return &Index{n: n, byRef: byRef, matrix: matrix}, nil
}

func fillRow(matrix []float32, vectors [][]float32, norms []float64, n, i int) {
	if norms[i] == 0 {
		return
	}
	matrix[i*n+i] = 1

	vi := vectors[i]
	for j := i + 1; j < n; j++ {
		if norms[j] == 0 {
			continue
		}
		vj := vectors[j]
		var dot float64
		for k := range vi {
			dot += float64(vi[k]) * float64(vj[k])
		}
		s := float32(dot / (norms[i] * norms[j]))
		matrix[i*n+j] = s
		matrix[j*n+i] = s
	}
}

// TopK returns the k most similar passages to ref, excluding ref itself.
// Results are ordered by descending score, ties broken by ascending
// corpus position. k larger than the number of other passages returns
// all of them.
func (x *Index) TopK(ref string, k int) ([]port.Neighbor, error) {
	i, ok := x.byRef[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPassage, ref)
	}
	if k <= 0 {
		return nil, fmt.Errorf("index: count must be positive, got %d", k)
	}
	if max := x.n - 1; k > max {
		k = max
	}

	row := x.matrix[i*x.n : (i+1)*x.n]
	candidates := make([]port.Neighbor, 0, x.n-1)
	for j, s := range row {
		if j == i {
			continue
		}
		candidates = append(candidates, port.Neighbor{Index: j, Score: float64(s)})
	}

	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].Score != candidates[b].Score {
			return candidates[a].Score > candidates[b].Score
		}
		return candidates[a].Index < candidates[b].Index
	})

	return candidates[:k], nil
}

// Len returns the number of indexed passages.
func (x *Index) Len() int {
	return x.n
}

// Similarity returns the matrix cell for a pair of positions. It is
// meant for inspection and tests; queries go through TopK.
func (x *Index) Similarity(i, j int) float64 {
	return float64(x.matrix[i*x.n+j])
}
