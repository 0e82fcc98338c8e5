package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/arloliu/tasksplit"
	"github.com/arloliu/tasksplit/internal/natsutil"
	"github.com/arloliu/tasksplit/types"
)

// Client sends solve requests to a solver service.
type Client struct {
	nc      *nats.Conn
	subject string
	timeout time.Duration
}

// NewClient creates a client for the service described by cfg.
//
// Parameters:
//   - nc: NATS connection
//   - cfg: Service configuration (SubjectPrefix, RequestTimeout)
//
// Returns:
//   - *Client: Initialized client
//   - error: ErrNATSConnectionRequired if nc is nil
func NewClient(nc *nats.Conn, cfg tasksplit.ServiceConfig) (*Client, error) {
	if nc == nil {
		return nil, tasksplit.ErrNATSConnectionRequired
	}

	return &Client{
		nc:      nc,
		subject: SolveSubject(cfg.SubjectPrefix),
		timeout: cfg.RequestTimeout,
	}, nil
}

// Solve sends req and waits for the reply.
//
// When ctx has no deadline the configured RequestTimeout applies. Errors
// reported by the service wrap the matching sentinel, e.g.
// tasksplit.ErrUnknownStrategy.
//
// Returns:
//   - *SolveReply: Reply with the solution
//   - error: Transport error (types.ErrServiceUnavailable when nothing answers)
//     or the service-side error
func (c *Client) Solve(ctx context.Context, req SolveRequest) (*SolveReply, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	ctx, cancel := requestTimeout(ctx, c.timeout)
	defer cancel()

	msg, err := c.nc.RequestWithContext(ctx, c.subject, data)
	if err != nil {
		if natsutil.IsConnectivityError(err) {
			return nil, fmt.Errorf("%w: %s: %w", types.ErrServiceUnavailable, c.subject, err)
		}

		return nil, fmt.Errorf("request %s: %w", c.subject, err)
	}

	var reply SolveReply
	if err := json.Unmarshal(msg.Data, &reply); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}

	if err := replyError(&reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// SolveTasks is a shorthand for Solve with a request built from its arguments.
func (c *Client) SolveTasks(ctx context.Context, strategy string, tasks []types.Task, machines int) (*SolveReply, error) {
	return c.Solve(ctx, SolveRequest{Strategy: strategy, Machines: machines, Tasks: tasks})
}
