package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	api "github.com/oshokin/wakey-wakey/internal/api/grpc/alarm"
	"github.com/oshokin/wakey-wakey/internal/config"
	"github.com/oshokin/wakey-wakey/internal/lifecycle"
	"github.com/oshokin/wakey-wakey/internal/logger"
	"github.com/oshokin/wakey-wakey/internal/repository/alarms"
	"github.com/oshokin/wakey-wakey/internal/repository/kv"
	"github.com/oshokin/wakey-wakey/internal/repository/settings"
	"github.com/oshokin/wakey-wakey/internal/scheduler"
)

// shutdownGrace bounds how long open Watch streams may delay shutdown.
const shutdownGrace = 3 * time.Second

// daemon owns every long-running component of the server.
type daemon struct {
	// manager is the alarm lifecycle manager.
	manager *lifecycle.Manager
	// scheduler delivers due notifications to the manager.
	scheduler *scheduler.Local
	// grpcServer exposes the control API.
	grpcServer *grpc.Server
	// reconcileInterval is the period between reconciliation passes.
	reconcileInterval time.Duration
}

// newDaemon builds the component graph from cfg and restores persisted state.
func newDaemon(ctx context.Context, cfg *config.Config) (*daemon, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := kv.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open data dir: %w", err)
	}

	settingsStore := settings.NewStore(ctx, store)

	local := scheduler.NewLocal(
		scheduler.WithLocation(loc),
		scheduler.WithAuthorization(cfg.Authorized()),
		scheduler.WithRepeatDaysFilter(cfg.RespectRepeatDays),
		scheduler.WithTickInterval(cfg.TickInterval),
	)

	manager := lifecycle.New(ctx, alarms.NewFileRepository(store), local, settingsStore,
		lifecycle.WithLocation(loc),
	)

	// Scheduling failures are logged by the manager and retried by the loop.
	if _, err = manager.Start(ctx); err != nil {
		logger.WarnKV(ctx, "Initial reconciliation incomplete", "error", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(api.UnaryActorInterceptor()),
		grpc.ChainStreamInterceptor(api.StreamActorInterceptor()),
	)
	api.NewServer(manager, settingsStore, local).Register(grpcServer)

	return &daemon{
		manager:           manager,
		scheduler:         local,
		grpcServer:        grpcServer,
		reconcileInterval: cfg.ReconcileInterval,
	}, nil
}

// serve runs the gRPC server, the scheduler loop and the reconcile loop
// until ctx is cancelled or one of them fails.
func (d *daemon) serve(ctx context.Context, lis net.Listener) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return d.scheduler.Run(groupCtx)
	})

	group.Go(func() error {
		return d.reconcileLoop(groupCtx)
	})

	group.Go(func() error {
		if err := d.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		d.stop()

		return nil
	})

	err := group.Wait()

	logger.Info(ctx, "Alarm daemon stopped")

	return err
}

// reconcileLoop repairs the pending notification set every reconcileInterval.
func (d *daemon) reconcileLoop(ctx context.Context) error {
	ticker := time.NewTicker(d.reconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := d.manager.Reconcile(ctx); err != nil {
				logger.WarnKV(ctx, "Reconciliation incomplete", "error", err)
			}
		}
	}
}

// stop drains in-flight calls, then cuts open streams after shutdownGrace.
func (d *daemon) stop() {
	stopped := make(chan struct{})

	go func() {
		d.grpcServer.GracefulStop()
		close(stopped)
	}()

	timer := time.NewTimer(shutdownGrace)
	defer timer.Stop()

	select {
	case <-stopped:
	case <-timer.C:
		d.grpcServer.Stop()
		<-stopped
	}
}
