package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/goatkit/goatsession/internal/api"
	"github.com/goatkit/goatsession/internal/config"
	"github.com/goatkit/goatsession/internal/constants"
)

// onListen is called with the bound address once serve is accepting
// connections. Tests replace it to learn the port.
var onListen = func(net.Addr) {}

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the session API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().String("addr", constants.DefaultServerAddr, "listen address")
	return cmd
}

// serve runs the HTTP API until ctx is done. When a config file is in use,
// valid changes to it are applied to the session while serve is running.
func (a *app) serve(ctx context.Context) error {
	if !a.cfg.Log.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	// viper cannot stop a watch, so reloads arriving after ctx is done are dropped
	if a.v.ConfigFileUsed() != "" {
		config.Watch(a.v, func(cfg *config.Config, err error) {
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				a.logger.Printf("config reload rejected: %v", err)
				return
			}
			configureSession(a.sess, cfg)
			a.logger.Printf("config reloaded from %s", a.v.ConfigFileUsed())
		})
	}

	router := api.NewRouter(a.cfg, a.sess, a.logger)
	defer router.Close()

	ln, err := net.Listen("tcp", a.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.cfg.Server.Addr, err)
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	a.logger.Printf("listening on %s", ln.Addr())
	onListen(ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	a.logger.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
