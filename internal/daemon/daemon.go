package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/zaibaitech/asrar-sub001/internal/api"
	"github.com/zaibaitech/asrar-sub001/internal/app/calculator"
	"github.com/zaibaitech/asrar-sub001/internal/infra/observability"
)

const shutdownGrace = 5 * time.Second

// NewCalculator builds the calculator described by cfg.
func NewCalculator(cfg Config, logger *zap.Logger) (*calculator.Calculator, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	ccfg, err := cfg.CalculatorConfig()
	if err != nil {
		return nil, err
	}
	tracer := observability.NewTracer(observability.TracerConfig{
		Enabled:  cfg.Tracing.Enabled,
		MaxSpans: cfg.Tracing.MaxSpans,
	})
	return calculator.New(ccfg, reg, tracer, logger)
}

// NewServer builds the HTTP API for cfg.
func NewServer(cfg Config, logger *zap.Logger) (*api.Server, error) {
	calc, err := NewCalculator(cfg, logger)
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}
	srv := api.NewServer(calc, logger)
	srv.SetRequestTimeout(timeout)
	if cfg.API.Metrics {
		srv.EnableMetrics()
	}
	return srv, nil
}

// Run serves the API on cfg.Addr() until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv, err := NewServer(cfg, logger)
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr(), err)
	}
	return Serve(ctx, ln, srv.Handler(), logger)
}

// Serve runs h on ln until ctx is cancelled.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, logger *zap.Logger) error {
	httpSrv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", zap.String("addr", ln.Addr().String()))
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("grace", shutdownGrace))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
