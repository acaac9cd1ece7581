package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"versesim/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "versesim",
	Short: "Verse similarity engine - nearest-neighbor search over passage vectors",
	Long: `versesim builds a cosine similarity index over a verse corpus using
pre-trained word vectors and answers nearest-neighbor queries against it.

Example usage:
  versesim query -r "Psalms 23:1"   # Print the passages closest to a reference
  versesim serve                    # Answer queries over HTTP
  versesim stats                    # Print corpus and index statistics
  versesim corpora                  # List corpus files in the data directory`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return cfg.Validate()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./versesim.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
