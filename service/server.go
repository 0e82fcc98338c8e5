package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"golang.org/x/time/rate"

	"github.com/arloliu/tasksplit"
	"github.com/arloliu/tasksplit/types"
)

// Server answers solve requests on a NATS subject.
//
// Requests are delivered on the NATS subscription goroutine, so one Server
// handles one request at a time; run more Servers in the same queue group to
// scale out.
//
// With Service.MaxRequestsPerSecond set, a request waits for a limiter slot
// within its SolveTimeout and is answered with CodeBusy when none frees up.
type Server struct {
	id      string
	nc      *nats.Conn
	solver  *tasksplit.Solver
	cfg     tasksplit.Config
	limiter *rate.Limiter

	logger    types.Logger
	metrics   types.MetricsCollector
	publisher *Publisher

	mu  sync.Mutex
	sub *nats.Subscription
}

// NewServer creates a solver service bound to nc.
//
// Subject, queue group and timeouts come from solver.Config().
//
// Parameters:
//   - nc: NATS connection
//   - solver: Solver answering the requests
//   - opts: Optional configuration (WithLogger, WithMetrics, WithPublisher)
//
// Returns:
//   - *Server: Initialized server (not yet subscribed)
//   - error: ErrNATSConnectionRequired if nc is nil
//
// Example:
//
//	srv, err := service.NewServer(nc, solver, service.WithPublisher(pub))
//	if err != nil { /* handle */ }
//	if err := srv.Start(ctx); err != nil { /* handle */ }
//	defer srv.Stop()
func NewServer(nc *nats.Conn, solver *tasksplit.Solver, opts ...Option) (*Server, error) {
	if nc == nil {
		return nil, tasksplit.ErrNATSConnectionRequired
	}
	if solver == nil {
		return nil, errors.New("solver is required")
	}

	o := applyOptions(opts)
	cfg := solver.Config()

	s := &Server{
		id:        uuid.NewString(),
		nc:        nc,
		solver:    solver,
		cfg:       cfg,
		logger:    o.logger,
		metrics:   o.metrics,
		publisher: o.publisher,
	}

	if rps := cfg.Service.MaxRequestsPerSecond; rps > 0 {
		burst := cfg.Service.RequestBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}

	return s, nil
}

// ID returns the random identifier of this server instance.
func (s *Server) ID() string {
	return s.id
}

// Subject returns the subject the server listens on.
func (s *Server) Subject() string {
	return SolveSubject(s.cfg.Service.SubjectPrefix)
}

// Start subscribes to the solve subject.
//
// The subscription is flushed to the server before Start returns, so a
// request sent afterwards is guaranteed to reach it.
//
// Returns:
//   - error: ErrAlreadyStarted if running, or a subscription error
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub != nil {
		return tasksplit.ErrAlreadyStarted
	}

	sub, err := s.nc.QueueSubscribe(s.Subject(), s.cfg.Service.QueueGroup, s.handle)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", s.Subject(), err)
	}

	if err := s.nc.FlushWithContext(ctx); err != nil {
		_ = sub.Unsubscribe()

		return fmt.Errorf("flush subscription: %w", err)
	}

	s.sub = sub
	s.logger.Info("solver service started",
		"server", s.id,
		"subject", s.Subject(),
		"queue", s.cfg.Service.QueueGroup,
		"strategies", s.solver.Strategies(),
	)

	return nil
}

// Stop drains the subscription; requests already received are still answered.
//
// Returns:
//   - error: ErrNotStarted if the server is not running, or a drain error
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub == nil {
		return tasksplit.ErrNotStarted
	}

	err := s.sub.Drain()
	s.sub = nil
	s.logger.Info("solver service stopped", "subject", s.Subject())

	if err != nil {
		return fmt.Errorf("drain subscription: %w", err)
	}

	return nil
}

func (s *Server) handle(msg *nats.Msg) {
	var req SolveRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.respond(msg, SolveReply{Code: CodeBadRequest, Error: err.Error()})
		s.metrics.RecordRequest(CodeBadRequest)

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SolveTimeout)
	defer cancel()

	reply := s.solve(ctx, req)
	s.respond(msg, reply)

	if reply.Code == "" {
		s.metrics.RecordRequest("ok")
	} else {
		s.metrics.RecordRequest(reply.Code)
	}
}

func (s *Server) solve(ctx context.Context, req SolveRequest) SolveReply {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return SolveReply{Strategy: req.Strategy, Server: s.id, Code: CodeBusy, Error: types.ErrServiceBusy.Error()}
		}
	}

	sol, err := s.solver.Solve(ctx, req.Strategy, req.Tasks, req.Machines)
	if err != nil {
		s.logger.Debug("solve request failed", "strategy", req.Strategy, "machines", req.Machines, "error", err)

		return SolveReply{Strategy: req.Strategy, Server: s.id, Code: codeFor(err), Error: err.Error()}
	}

	reply := newReply(sol)
	reply.Server = s.id
	if s.publisher != nil {
		key, err := s.publisher.Publish(ctx, req.Machines, req.Tasks, sol)
		if err == nil {
			reply.Key = key
		}
	}

	return reply
}

func (s *Server) respond(msg *nats.Msg, reply SolveReply) {
	data, err := json.Marshal(reply)
	if err != nil {
		s.logger.Error("encode reply failed", "error", err)

		return
	}

	if err := msg.Respond(data); err != nil {
		s.logger.Warn("reply failed", "subject", msg.Subject, "error", err)
	}
}

// requestTimeout bounds a client request when ctx has no deadline.
func requestTimeout(ctx context.Context, fallback time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || fallback <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, fallback)
}
