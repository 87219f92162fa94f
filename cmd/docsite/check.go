package main

import (
	"fmt"

	"github.com/dgallion1/docsite/internal/site"
	"github.com/spf13/cobra"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and pages without building",
	Long: `Check validates the configuration, resolves the navigation, parses every
page, and reports anything a build would warn about or fail on. The exit
status is non-zero when errors are found, or with --strict when warnings are
found too.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if checkStrict {
			cfg.Strict = true
		}

		findings, err := site.NewBuilder(cfg, logger).Check(cmd.Context())
		if err != nil {
			return err
		}
		for _, f := range findings {
			fmt.Println(f.String())
		}
		errs, warns := findings.Errors(), findings.Warnings()
		if errs > 0 {
			return fmt.Errorf("%d error(s), %d warning(s)", errs, warns)
		}
		if cfg.Strict && warns > 0 {
			return fmt.Errorf("strict mode: %d warning(s)", warns)
		}
		if len(findings) == 0 {
			fmt.Println("no problems found")
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVarP(&checkStrict, "strict", "s", false, "treat warnings as errors")
	rootCmd.AddCommand(checkCmd)
}
