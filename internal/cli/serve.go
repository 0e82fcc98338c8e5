package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/tasksplit"
	"github.com/arloliu/tasksplit/internal/metrics"
	"github.com/arloliu/tasksplit/service"
)

const shutdownTimeout = 5 * time.Second

type serveOpts struct {
	natsURL     string
	metricsAddr string
	publish     bool
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		natsURL:     nats.DefaultURL,
		metricsAddr: ":9090",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer solve requests over NATS",
		Long: `Serve subscribes to <subjectPrefix>.solve in the configured queue group
and answers JSON solve requests. Several instances share the load.

With --publish every solution is also written to a JetStream KV bucket.
Prometheus metrics are served on --metrics-addr at /metrics, with a NATS
health check at /healthz (empty address disables both).`,
		Example: `  tasksplit serve --nats-url nats://localhost:4222
  tasksplit serve -c tasksplit.yaml --publish --metrics-addr :9100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.natsURL, "nats-url", opts.natsURL, "NATS server URL")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", opts.metricsAddr, "listen address for /metrics and /healthz")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "write solutions to the JetStream KV bucket")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewPrometheus(reg, "")

	solver, err := c.newSolver(tasksplit.WithMetrics(collector))
	if err != nil {
		return err
	}
	cfg := solver.Config()
	cfg.ValidateWithWarnings(c.Logger)

	nc, err := nats.Connect(opts.natsURL, nats.Name("tasksplit"))
	if err != nil {
		return fmt.Errorf("connect %s: %w", opts.natsURL, err)
	}
	defer nc.Close()

	svcOpts := []service.Option{service.WithLogger(c.Logger), service.WithMetrics(collector)}
	if opts.publish {
		js, err := jetstream.New(nc)
		if err != nil {
			return fmt.Errorf("jetstream: %w", err)
		}

		pub, err := service.NewPublisher(ctx, js, cfg.Service, service.WithLogger(c.Logger), service.WithMetrics(collector))
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, service.WithPublisher(pub))
		c.Logger.Info("publishing solutions", "bucket", pub.Bucket())
	}

	srv, err := service.NewServer(nc, solver, svcOpts...)
	if err != nil {
		return err
	}

	if err := srv.Start(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	var httpSrv *http.Server
	if opts.metricsAddr != "" {
		httpSrv = &http.Server{
			Addr:              opts.metricsAddr,
			Handler:           newHTTPHandler(reg, nc.IsConnected),
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			c.Logger.Info("serving metrics", "addr", opts.metricsAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}

			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		var errs []error
		if err := srv.Stop(); err != nil {
			errs = append(errs, err)
		}

		if httpSrv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}

		return errors.Join(errs...)
	})

	err = g.Wait()
	if err == nil {
		// a clean shutdown always follows a cancelled parent context
		return ctx.Err()
	}

	return err
}
