package main

import (
	"fmt"

	"github.com/dgallion1/docsite/internal/scaffold"
	"github.com/spf13/cobra"
)

var newName string

var newCmd = &cobra.Command{
	Use:   "new [dir]",
	Short: "Create a new documentation project",
	Long: `New scaffolds a documentation project: a configuration file and a docs
directory with starter pages. The target directory defaults to the working
directory and existing files are never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		created, err := scaffold.Create(dir, newName)
		if err != nil {
			return err
		}
		for _, p := range created {
			fmt.Println("created", p)
		}
		fmt.Println("run `docsite serve` to preview the site")
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newName, "name", "", `site_name for the new project (default "My Docs")`)
	rootCmd.AddCommand(newCmd)
}
