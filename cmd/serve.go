package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/updraft-io/updraft/internal/mirror"
	"github.com/updraft-io/updraft/pkg/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <directory>",
	Short: "Serve a local directory as an update source",
	Long: `Serve a source tree (manifest.json plus archives, signatures and
screenshots) over HTTP, so clients can be pointed at it for testing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mirror.New(args[0])
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(serveAddr); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-quit:
			logger.Info("Shutting down mirror")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8100", "listen address")
}
