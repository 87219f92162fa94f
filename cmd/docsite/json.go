package main

import (
	"github.com/dgallion1/docsite/internal/site"
	"github.com/spf13/cobra"
)

var jsonOutDir string

var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Write each page's heading tree as JSON",
	Long: `Json parses every page in the navigation and writes its heading tree as an
indented JSON file, mirroring the docs layout under the output directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		n, err := site.NewBuilder(cfg, logger).DumpTrees(cmd.Context(), jsonOutDir)
		if err != nil {
			return err
		}
		logger.Info("doc trees written", "count", n, "dir", jsonOutDir)
		return nil
	},
}

func init() {
	jsonCmd.Flags().StringVarP(&jsonOutDir, "out", "o", "trees", "directory for the JSON files")
	rootCmd.AddCommand(jsonCmd)
}
