package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"versesim/internal/adapter/corpus"
)

var corporaCmd = &cobra.Command{
	Use:   "corpora",
	Short: "List corpus files in the data directory",
	Long: `Scan the configured data directory for corpus files matching the
include patterns and list them. The corpus marked with * is the one
queries are answered from.`,
	RunE: runCorpora,
}

func init() {
	rootCmd.AddCommand(corporaCmd)
}

func runCorpora(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	dataDir := resolvePath(rootDir, cfg.Corpus.DataDir)
	walker := corpus.NewWalker(cfg.Corpus.Includes, cfg.Corpus.Excludes)
	files, err := walker.Walk(dataDir)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", dataDir, err)
	}

	if len(files) == 0 {
		fmt.Printf("No corpus files found under %s\n", dataDir)
		return nil
	}

	active := resolvePath(rootDir, cfg.Corpus.Path)
	fmt.Printf("Corpus files under %s:\n\n", dataDir)
	for _, f := range files {
		marker := " "
		if f.Path == active {
			marker = "*"
		}
		fmt.Printf("%s %-48s %10s\n", marker, f.Path, formatSize(f.Size))
	}

	return nil
}
