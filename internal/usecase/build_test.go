package usecase

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"versesim/internal/adapter/analyzer"
	"versesim/internal/adapter/corpus"
	"versesim/internal/adapter/embedding"
)

const testCorpus = `[
  {
    "data": [
      {
        "verses": [
          {"verse": "Psalms 23:1", "text": "Yahweh is my shepherd"},
          {"verse": "John 10:14", "text": "God is our shepherd"},
          {"verse": "Songs 2:5", "text": "Comfort me with apples"},
          {"verse": "Wilds 1:1", "text": "Flibber jabber wock"}
        ]
      }
    ]
  }
]`

const testTable = `God 1 0
shepherd 0.9 0.1
apples 0 1
`

func pipelineFixture(t *testing.T) *BuildUseCase {
	t.Helper()

	tokenizer, err := analyzer.NewTokenizer("english")
	if err != nil {
		t.Fatalf("NewTokenizer: %v", err)
	}
	table, err := embedding.ParseTable(strings.NewReader(testTable))
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	return NewBuildUseCase(corpus.NewLoader(), tokenizer, table, 4)
}

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildPipeline(t *testing.T) {
	u := pipelineFixture(t)
	result, err := u.Build(writeCorpus(t, testCorpus))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := len(result.Verses); got != 4 {
		t.Fatalf("built %d verses, want 4", got)
	}
	if result.Index.Len() != 4 {
		t.Fatalf("index holds %d passages, want 4", result.Index.Len())
	}

	search := NewSearchUseCase(result.Index, result.Verses, 10)
	got, err := search.Similar("Psalms 23:1", 3)
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}

	// "Yahweh is my shepherd" and "God is our shepherd" normalize to the
	// same tokens, so the second ranks first with a perfect score. The
	// apples verse shares nothing but still beats the all-miss verse,
	// which sits at zero.
	wantRefs := []string{"John 10:14", "Songs 2:5", "Wilds 1:1"}
	if len(got) != len(wantRefs) {
		t.Fatalf("Similar returned %d results, want %d", len(got), len(wantRefs))
	}
	for i, want := range wantRefs {
		if got[i].Verse.Ref != want {
			t.Errorf("result %d = %q, want %q", i, got[i].Verse.Ref, want)
		}
	}
	if got[0].Score != 1 {
		t.Errorf("equivalent passage score = %v, want exactly 1", got[0].Score)
	}
	if got[1].Score <= got[2].Score {
		t.Errorf("scores not strictly ordered: %v then %v", got[1].Score, got[2].Score)
	}
	if got[2].Score != 0 {
		t.Errorf("unresolvable passage score = %v, want 0", got[2].Score)
	}
	if got[0].Verse.Text != "God is our shepherd" {
		t.Errorf("result text = %q, want the passage text", got[0].Verse.Text)
	}
}

func TestBuildStats(t *testing.T) {
	u := pipelineFixture(t)
	result, err := u.Build(writeCorpus(t, testCorpus))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	stats := result.Stats
	if stats.Verses != 4 {
		t.Errorf("Verses = %d, want 4", stats.Verses)
	}
	// Per passage after stopword removal: 2 + 2 + 2 + 3 tokens.
	if stats.Tokens != 9 {
		t.Errorf("Tokens = %d, want 9", stats.Tokens)
	}
	if stats.ResolvedWords != 5 {
		t.Errorf("ResolvedWords = %d, want 5", stats.ResolvedWords)
	}
	if stats.MissingWords != 4 {
		t.Errorf("MissingWords = %d, want 4", stats.MissingWords)
	}
	if stats.VectorLen != 8 {
		t.Errorf("VectorLen = %d, want 8", stats.VectorLen)
	}
	if stats.MatrixBytes != 64 {
		t.Errorf("MatrixBytes = %d, want 64", stats.MatrixBytes)
	}
}

func TestBuildProgressStages(t *testing.T) {
	u := pipelineFixture(t)

	var mu sync.Mutex
	seen := map[string]int{}
	u.Progress = func(stage string, done, total int) {
		mu.Lock()
		seen[stage]++
		mu.Unlock()
	}

	if _, err := u.Build(writeCorpus(t, testCorpus)); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if seen["vectorize"] != 4 {
		t.Errorf("vectorize reported %d times, want 4", seen["vectorize"])
	}
	if seen["similarity"] != 4 {
		t.Errorf("similarity reported %d times, want 4", seen["similarity"])
	}
}

func TestBuildInvalidCorpus(t *testing.T) {
	u := pipelineFixture(t)

	if _, err := u.Build(writeCorpus(t, `{"not": "a corpus"}`)); err == nil {
		t.Fatal("expected invalid corpus to fail the build")
	}
	if _, err := u.Build(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected missing corpus to fail the build")
	}
}
