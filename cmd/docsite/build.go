package main

import (
	"github.com/dgallion1/docsite/internal/site"
	"github.com/spf13/cobra"
)

var (
	buildSiteDir string
	buildStrict  bool
	buildDirty   bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site",
	Long: `Build renders every page in the navigation to HTML, copies static files
and theme assets, and writes the search index. The output directory is
cleaned first unless --dirty is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if buildSiteDir != "" {
			cfg.SiteDir = buildSiteDir
		}
		if buildStrict {
			cfg.Strict = true
		}

		b := site.NewBuilder(cfg, logger)
		b.Clean = !buildDirty
		b.Generator = "docsite " + version
		_, err = b.Build(cmd.Context())
		return err
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildSiteDir, "site-dir", "d", "", "write the site to this directory instead of site_dir")
	buildCmd.Flags().BoolVarP(&buildStrict, "strict", "s", false, "treat warnings as errors")
	buildCmd.Flags().BoolVar(&buildDirty, "dirty", false, "keep existing files in the output directory")
	rootCmd.AddCommand(buildCmd)
}
