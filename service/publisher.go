package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/tasksplit"
	"github.com/arloliu/tasksplit/internal/hash"
	"github.com/arloliu/tasksplit/internal/kvutil"
	"github.com/arloliu/tasksplit/internal/logging"
	"github.com/arloliu/tasksplit/internal/metrics"
	"github.com/arloliu/tasksplit/internal/natsutil"
	"github.com/arloliu/tasksplit/types"
)

// SolutionRecord is the KV representation of a published solution.
type SolutionRecord struct {
	Strategy   string          `json:"strategy"`
	Machines   int             `json:"machines"`
	Tasks      []types.Task    `json:"tasks"`
	Partition  types.Partition `json:"partition"`
	Sums       []float64       `json:"sums"`
	Makespan   float64         `json:"makespan"`
	Difference float64         `json:"difference"`
	SolvedAt   time.Time       `json:"solvedAt"`
}

// Key returns the KV key of an instance: the hex xxh3 fingerprint of the
// strategy, machine count and ordered tasks.
func Key(strategy string, machines int, tasks []types.Task) string {
	return strconv.FormatUint(hash.Fingerprint(strategy, machines, tasks), 16)
}

// Publisher stores the latest solution per instance in a JetStream KV bucket.
type Publisher struct {
	kv      jetstream.KeyValue
	logger  types.Logger
	metrics types.MetricsCollector
}

// NewPublisher opens (or creates) the solution bucket named in cfg.
//
// Parameters:
//   - ctx: Context for bucket creation
//   - js: JetStream context
//   - cfg: Service configuration (SolutionBucket, SolutionTTL)
//   - opts: Optional configuration (WithLogger, WithMetrics)
//
// Returns:
//   - *Publisher: Publisher bound to the bucket
//   - error: Bucket creation error
//
// Example:
//
//	js, _ := jetstream.New(nc)
//	pub, err := service.NewPublisher(ctx, js, solver.Config().Service)
func NewPublisher(ctx context.Context, js jetstream.JetStream, cfg tasksplit.ServiceConfig, opts ...Option) (*Publisher, error) {
	if js == nil {
		return nil, tasksplit.ErrNATSConnectionRequired
	}

	kv, err := kvutil.EnsureKVBucketWithRetry(ctx, js, kvutil.BucketConfig(cfg.SolutionBucket, cfg.SolutionTTL), 3)
	if err != nil {
		return nil, fmt.Errorf("open solution bucket: %w", err)
	}

	o := applyOptions(opts)

	return &Publisher{kv: kv, logger: o.logger, metrics: o.metrics}, nil
}

// Publish stores a solution under its instance key.
//
// Returns:
//   - string: KV key the record was written to
//   - error: Wraps types.ErrPublishFailed on KV failure
func (p *Publisher) Publish(ctx context.Context, machines int, tasks []types.Task, sol *tasksplit.Solution) (string, error) {
	key := Key(sol.Strategy, machines, tasks)
	rec := SolutionRecord{
		Strategy:   sol.Strategy,
		Machines:   machines,
		Tasks:      tasks,
		Partition:  sol.Result.Partition,
		Sums:       sol.Result.Sums,
		Makespan:   sol.Makespan,
		Difference: sol.Difference,
		SolvedAt:   time.Now().UTC(),
	}

	rev, err := kvutil.PutJSON(ctx, p.kv, key, rec)
	p.metrics.RecordPublish(err == nil)
	if err != nil {
		p.logger.Warn("solution publish failed",
			"key", key,
			"connectivity", natsutil.IsConnectivityError(err),
			"error", err,
		)

		return "", fmt.Errorf("%w: %s: %w", types.ErrPublishFailed, key, err)
	}

	p.logger.Debug("solution published", "key", key, "revision", rev)

	return key, nil
}

// Get reads the solution stored under key.
//
// Returns:
//   - *SolutionRecord: Stored record
//   - bool: false if no record exists
//   - error: KV or decode error
func (p *Publisher) Get(ctx context.Context, key string) (*SolutionRecord, bool, error) {
	var rec SolutionRecord
	if _, err := kvutil.GetJSON(ctx, p.kv, key, &rec); err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return &rec, true, nil
}

// Bucket returns the solution bucket name.
func (p *Publisher) Bucket() string {
	return p.kv.Bucket()
}

// options holds optional service dependencies.
type options struct {
	logger    types.Logger
	metrics   types.MetricsCollector
	publisher *Publisher
}

// Option configures a Server or Publisher.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(logger types.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m types.MetricsCollector) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithPublisher makes the Server store every solution it returns.
// Ignored by NewPublisher.
func WithPublisher(p *Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	if o.metrics == nil {
		o.metrics = metrics.NewNop()
	}

	return o
}
