package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"versesim/internal/usecase"
)

var (
	queryRef   string
	queryCount int
	queryJSON  bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Find passages similar to a reference",
	Long: `Build the similarity index for the configured corpus and print the
passages closest to the given reference.

Examples:
  versesim query -r "Psalms 23:1"
  versesim query -r "Genesis 1:1" -k 5 --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryRef, "ref", "r", "", "passage reference (required)")
	queryCmd.Flags().IntVarP(&queryCount, "count", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("ref")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	result, _, err := buildPipeline(cfg, GetRootDir(), !queryJSON)
	if err != nil {
		return err
	}

	search := usecase.NewSearchUseCase(result.Index, result.Verses, cfg.Query.DefaultCount)
	scored, err := search.Similar(queryRef, queryCount)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		type verseJSON struct {
			Reference string  `json:"reference"`
			Text      string  `json:"text"`
			Score     float64 `json:"score"`
		}
		out := make([]verseJSON, len(scored))
		for i, sv := range scored {
			out[i] = verseJSON{Reference: sv.Verse.Ref, Text: sv.Verse.Text, Score: sv.Score}
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(scored) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("\nPassages similar to %s:\n\n", queryRef)
	for i, sv := range scored {
		fmt.Printf("%2d. %s (score: %.4f)\n    %s\n\n", i+1, sv.Verse.Ref, sv.Score, sv.Verse.Text)
	}
	return nil
}
