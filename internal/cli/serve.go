package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"roster/internal/platform/config"
	"roster/internal/platform/httpserver"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr  string
	Store string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the roster HTTP API",
		Long: `Run the roster HTTP API until SIGINT or SIGTERM.

Environment:
  ROSTER_ADDR                listen address (default ":8000")
  ROSTER_STORE               memory | postgres | mongo (default "memory")
  ROSTER_DATABASE_URL        PostgreSQL DSN, required for the postgres store
  ROSTER_MONGO_URI           MongoDB URI (default "mongodb://localhost:27017")
  ROSTER_MONGO_DATABASE      MongoDB database (default "roster")
  ROSTER_TIMEZONE            IANA zone deciding attendance days (default "UTC")
  ROSTER_CASCADE_ATTENDANCE  delete attendance with its employee (default "true")
  ROSTER_LOG_LEVEL           debug | info | warn | error (default "info")
  ROSTER_LOG_FORMAT          json | text (default "json")`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Addr != "" {
				opts.Config.Server.Addr = opts.Addr
			}
			if opts.Store != "" {
				opts.Config.Store.Driver = config.StoreDriver(opts.Store)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts.RootOptions, nil)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides ROSTER_ADDR)")
	cmd.Flags().StringVar(&opts.Store, "store", "", "store driver (overrides ROSTER_STORE)")

	return cmd
}

// runServe blocks until ctx is cancelled or the server fails. When ready is non-nil
// it receives the bound address once the listener is open.
func runServe(ctx context.Context, opts *RootOptions, ready chan<- string) error {
	cfg := opts.Config
	log := opts.Logger

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	st, err := openStores(ctx, cfg.Store, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			log.Error("close store", "error", err)
		}
	}()

	router, err := newRouter(cfg, st, log, reg)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.Addr, err)
	}
	srv := httpserver.New(cfg.Server, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting roster",
			"addr", ln.Addr().String(),
			"store", string(cfg.Store.Driver),
			"timezone", cfg.Attendance.Location.String(),
		)
		if ready != nil {
			ready <- ln.Addr().String()
		}
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
