package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/askanything/board/internal/api"
	"github.com/askanything/board/internal/api/handler"
	"github.com/askanything/board/internal/infrastructure/queue"
	"github.com/askanything/board/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type ServeOptions struct {
	*RootOptions
	Addr string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP on the loopback interface",
		Long: `Serve the board's JSON API, a server-sent-event change stream at
/v1/stream, health probes and Prometheus metrics.

Example:
  askboard serve
  STORE_BACKEND=redis askboard serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides ADDR)")
	return cmd
}

func runServe(parent context.Context, opts *ServeOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.shutdown(context.Background())

	addr := a.cfg.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}

	hub := handler.NewStreamHub(logger.For("stream"))
	dispatcher := queue.NewDispatcher(a.cfg.DispatchWorkers, hub, logger.For("dispatcher"))
	dispatcher.Start(ctx)
	a.store.OnChange(dispatcher.Enqueue)

	e := api.NewRouter(api.Dependencies{
		Service: a.service,
		Hub:     hub,
		Pinger:  a.pinger,
		Log:     logger.For("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
