package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/danielpatrickdp/magic-orb/internal/catalog"
	"github.com/danielpatrickdp/magic-orb/internal/gate"
	"github.com/danielpatrickdp/magic-orb/internal/oracle"
	"github.com/danielpatrickdp/magic-orb/internal/selector"
	"github.com/danielpatrickdp/magic-orb/internal/state"
	"github.com/danielpatrickdp/magic-orb/internal/transport"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gRPC oracle service",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

// newOracle opens the session store and wires an oracle from cfg.
// A broken catalog aborts here, before any request is accepted.
func newOracle(dsn string) (*oracle.Oracle, *state.Store, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, nil, err
	}
	store, err := state.NewStore(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	o := oracle.New(store,
		oracle.WithGate(gate.NewGate(cfg.Gate)),
		oracle.WithSelector(selector.New(cat)),
		oracle.WithLogger(logger),
	)
	return o, store, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	o, store, err := newOracle(cfg.Store.DSN)
	if err != nil {
		return err
	}
	defer store.Close()

	lis, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
	}
	gs := transport.NewGRPCServer(o, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("orb serving",
			zap.String("addr", lis.Addr().String()),
			zap.String("dsn", cfg.Store.DSN),
			zap.Int("catalog", o.Catalog().Len()))
		return gs.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		gs.GracefulStop()
		return nil
	})
	return g.Wait()
}
