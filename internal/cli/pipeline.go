package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
	"versesim/config"
	"versesim/internal/adapter/analyzer"
	"versesim/internal/adapter/corpus"
	"versesim/internal/adapter/embedding"
	"versesim/internal/usecase"
)

// resolvePath absolutizes a config-relative path against the root dir.
func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// loadTable loads the word vector table, going through the parse cache
// when enabled.
func loadTable(cfg *config.Config, rootDir string) (*embedding.Table, error) {
	path := resolvePath(rootDir, cfg.Embedding.Path)
	// Status goes to stderr so JSON output stays pipeable.
	fmt.Fprintf(os.Stderr, "Loading embedding table from %s...\n", path)

	var table *embedding.Table
	var err error
	if cfg.Embedding.Cache {
		if err := config.EnsureStateDir(rootDir); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
		table, err = embedding.LoadTableCached(path, resolvePath(rootDir, cfg.Embedding.CachePath))
	} else {
		table, err = embedding.LoadTable(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load embedding table: %w", err)
	}

	if cfg.Embedding.Dimension != 0 && table.Dimension() != cfg.Embedding.Dimension {
		return nil, fmt.Errorf("embedding table has dimension %d, config expects %d",
			table.Dimension(), cfg.Embedding.Dimension)
	}

	fmt.Fprintf(os.Stderr, "Loaded %d words (%d dimensions)\n", table.Len(), table.Dimension())
	return table, nil
}

// buildPipeline assembles the full pipeline and builds the index for the
// configured corpus.
func buildPipeline(cfg *config.Config, rootDir string, showProgress bool) (*usecase.BuildResult, *embedding.Table, error) {
	table, err := loadTable(cfg, rootDir)
	if err != nil {
		return nil, nil, err
	}

	tokenizer, err := analyzer.NewTokenizer(cfg.Preprocess.Stopwords)
	if err != nil {
		return nil, nil, err
	}

	buildUC := usecase.NewBuildUseCase(corpus.NewLoader(), tokenizer, table, cfg.Preprocess.MaxTokens)
	if showProgress {
		buildUC.Progress = newStageProgress()
	}

	corpusPath := resolvePath(rootDir, cfg.Corpus.Path)
	fmt.Fprintf(os.Stderr, "Building similarity index for %s...\n", corpusPath)

	result, err := buildUC.Build(corpusPath)
	if err != nil {
		return nil, nil, err
	}
	return result, table, nil
}

// newStageProgress returns a progress callback that renders one bar per
// build stage. Callbacks may arrive from concurrent workers.
func newStageProgress() func(stage string, done, total int) {
	var mu sync.Mutex
	var bar *progressbar.ProgressBar
	current := ""

	labels := map[string]string{
		"vectorize":  "[cyan]Vectorizing[reset]",
		"similarity": "[cyan]Similarity[reset] ",
	}

	return func(stage string, done, total int) {
		mu.Lock()
		defer mu.Unlock()

		if stage != current {
			if bar != nil {
				bar.Finish()
			}
			desc := labels[stage]
			if desc == "" {
				desc = stage
			}
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription(desc),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
			current = stage
		}
		bar.Set(done)
	}
}
