package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/docsite/internal/serve"
	"github.com/spf13/cobra"
)

var (
	serveAddr    string
	serveNoWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site locally and rebuild on change",
	Long: `Serve builds the site into a scratch directory, serves it over HTTP, and
watches the docs directory, the configuration file and any custom theme
directory for changes. Build health is reported on /-/health.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.DevAddr = serveAddr
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			cancel()
		}()

		s := serve.NewServer(cfg, logger)
		s.ConfigPath = cfg.ConfigFile
		s.NoWatch = serveNoWatch
		return s.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "dev-addr", "a", "", "address to serve on as host:port (default from dev_addr)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "build once and serve without watching for changes")
	rootCmd.AddCommand(serveCmd)
}
