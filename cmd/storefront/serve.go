package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	browseapp "github.com/dwikikusuma/storefront/internal/browse/app"
	"github.com/dwikikusuma/storefront/internal/web"
	"github.com/dwikikusuma/storefront/pkg/clock"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
)

const catalogLoadTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the storefront over HTTP and gRPC health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := shutdown.WithSignals(parent)
	defer cancel()

	st, err := newStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	ticker, err := clock.NewTicker(cfg.TickSpec, nil)
	if err != nil {
		return err
	}
	view := browseapp.NewView(st.catalog, st.cart, st.filter, ticker.Now)

	handler := web.NewHandler(web.Deps{
		Catalog: st.catalog,
		Cart:    st.cart,
		View:    view,
		Editor:  st.editor,
		Log:     log.Named("http"),
	})

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", grpcAddr, err)
	}
	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthSrv)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", zap.String("addr", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("grpc starting", zap.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		loadCtx, loadCancel := context.WithTimeout(gctx, catalogLoadTimeout)
		defer loadCancel()
		if err := st.catalog.Load(loadCtx); err != nil {
			// The storefront keeps serving an empty catalog; health stays NOT_SERVING.
			log.Error("catalog load failed", zap.String("source", cfg.CatalogSource), zap.Error(err))
			return nil
		}
		healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		return nil
	})

	ticker.Start()

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		healthSrv.Shutdown()

		err := shutdown.Stop(shutdown.DefaultTimeout,
			httpServer.Shutdown,
			ticker.Stop,
			func(ctx context.Context) error {
				stopped := make(chan struct{})
				go func() {
					grpcServer.GracefulStop()
					close(stopped)
				}()
				select {
				case <-stopped:
					return nil
				case <-ctx.Done():
					grpcServer.Stop()
					return ctx.Err()
				}
			},
		)
		if err != nil {
			log.Error("shutdown error", zap.Error(err))
		}
		return nil
	})

	err = g.Wait()
	log.Info("bye")
	return err
}
