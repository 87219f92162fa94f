package main

import (
	"fmt"

	"github.com/dgallion1/docsite/internal/nav"
	"github.com/dgallion1/docsite/internal/site"
	"github.com/disiqueira/gotree/v3"
	"github.com/spf13/cobra"
)

var navURLs bool

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Print the navigation tree",
	Long: `Nav resolves the navigation, either the configured pages or the markdown
files discovered under the docs directory, and prints it as a tree.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		nv, err := site.NewBuilder(cfg, logger).Navigation(cmd.Context())
		if err != nil {
			return err
		}

		name := cfg.SiteName
		if name == "" {
			name = "site"
		}
		fmt.Print(renderNav(name, nv, navURLs))
		return nil
	},
}

func renderNav(siteName string, nv *nav.Nav, urls bool) string {
	root := gotree.New(siteName)
	for _, item := range nv.Items {
		if item.Section != nil {
			sub := root.Add(item.Section.Title)
			for _, p := range item.Section.Pages {
				sub.Add(navLabel(p, urls))
			}
			continue
		}
		root.Add(navLabel(item.Page, urls))
	}
	return root.Print()
}

func navLabel(p *nav.Page, urls bool) string {
	if urls {
		return fmt.Sprintf("%s (%s)", p.Title, p.URL)
	}
	return fmt.Sprintf("%s (%s)", p.Title, p.SourcePath)
}

func init() {
	navCmd.Flags().BoolVar(&navURLs, "urls", false, "show page URLs instead of source paths")
	rootCmd.AddCommand(navCmd)
}
