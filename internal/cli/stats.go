package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print corpus and index statistics",
	Long: `Build the similarity index for the configured corpus and print
statistics about the corpus, the embedding table and the matrix.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	start := time.Now()
	result, table, err := buildPipeline(cfg, GetRootDir(), true)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	s := result.Stats
	fmt.Printf("\nCorpus:\n")
	fmt.Printf("  Passages:        %d\n", s.Verses)
	fmt.Printf("  Tokens:          %d\n", s.Tokens)
	fmt.Printf("  Resolved words:  %d\n", s.ResolvedWords)
	fmt.Printf("  Missing words:   %d\n", s.MissingWords)

	fmt.Printf("\nEmbeddings:\n")
	fmt.Printf("  Table words:     %d\n", table.Len())
	fmt.Printf("  Dimensions:      %d\n", table.Dimension())
	fmt.Printf("  Passage vector:  %d\n", s.VectorLen)

	fmt.Printf("\nIndex:\n")
	fmt.Printf("  Matrix size:     %s\n", formatSize(s.MatrixBytes))
	fmt.Printf("  Build time:      %s\n", elapsed.Round(time.Millisecond))

	return nil
}

// formatSize formats a byte count in a human-readable way.
func formatSize(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GiB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
