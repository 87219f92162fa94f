package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/dgallion1/docsite/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	logJSON bool
	verbose bool
	quiet   bool

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docsite",
	Short: "Build and serve documentation sites from markdown",
	Long: `docsite turns a directory of markdown files and an mkdocs-style YAML
configuration into a static documentation site, and serves it locally with
rebuild-on-change during writing.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config-file", "f", "", "site configuration file (default: mkdocs.yml in the working directory)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
}

// initializeSettings layers DOCSITE_* environment variables underneath the
// persistent flags and installs the process logger. It runs as the root
// command's PersistentPreRunE.
func initializeSettings(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	v.SetEnvPrefix("DOCSITE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	flags := cmd.Root().PersistentFlags()
	for _, name := range []string{"config-file", "log-json", "verbose", "quiet"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return err
		}
	}
	cfgFile = v.GetString("config-file")
	logJSON = v.GetBool("log-json")
	verbose = v.GetBool("verbose")
	quiet = v.GetBool("quiet")

	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if logJSON {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	slog.SetDefault(logger)
	return nil
}

// loadConfig finds and loads the site configuration: the --config-file flag
// when set, otherwise the first candidate file in the working directory.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.LoadDir(cwd)
}
