package kvutil

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	tstest "github.com/arloliu/tasksplit/testing"
)

func newJetStream(t *testing.T) jetstream.JetStream {
	t.Helper()

	_, nc := tstest.StartEmbeddedNATS(t)
	js, err := jetstream.New(nc)
	require.NoError(t, err)

	return js
}

func TestBucketConfig(t *testing.T) {
	cfg := BucketConfig("solutions", time.Hour)

	require.Equal(t, "solutions", cfg.Bucket)
	require.Equal(t, uint8(1), cfg.History)
	require.Equal(t, time.Hour, cfg.TTL)
}

func TestBackoff(t *testing.T) {
	require.Equal(t, 10*time.Millisecond, backoff(0))
	require.Equal(t, 20*time.Millisecond, backoff(1))
	require.Equal(t, 40*time.Millisecond, backoff(2))
}

// TestEnsureKVBucketWithRetry tests the retry utility function.
func TestEnsureKVBucketWithRetry(t *testing.T) {
	js := newJetStream(t)
	ctx := context.Background()

	t.Run("successful creation on first try", func(t *testing.T) {
		kv, err := EnsureKVBucketWithRetry(ctx, js, BucketConfig("test-retry-bucket-1", 5*time.Second), 3)

		require.NoError(t, err)
		require.Equal(t, "test-retry-bucket-1", kv.Bucket())
	})

	t.Run("bucket exists - should open it", func(t *testing.T) {
		cfg := BucketConfig("test-retry-bucket-2", 5*time.Second)
		_, err := js.CreateKeyValue(ctx, cfg)
		require.NoError(t, err)

		kv, err := EnsureKVBucketWithRetry(ctx, js, cfg, 3)

		require.NoError(t, err)
		require.NotNil(t, kv)
	})

	t.Run("concurrent creates - 10 solvers", func(t *testing.T) {
		cfg := BucketConfig("test-retry-bucket-3", 5*time.Second)
		kvs := make([]jetstream.KeyValue, 10)

		var g errgroup.Group
		for i := range kvs {
			g.Go(func() error {
				kv, err := EnsureKVBucketWithRetry(ctx, js, cfg, 5)
				kvs[i] = kv

				return err
			})
		}

		require.NoError(t, g.Wait(), "all solvers should get the bucket")
		for i, kv := range kvs {
			require.NotNil(t, kv, "solver %d should have valid KV instance", i)
		}
	})

	t.Run("context timeout - should fail gracefully", func(t *testing.T) {
		shortCtx, cancel := context.WithTimeout(ctx, time.Nanosecond)
		defer cancel()
		<-shortCtx.Done()

		_, err := EnsureKVBucketWithRetry(shortCtx, js, BucketConfig("test-retry-bucket-4", 0), 3)

		require.Error(t, err)
		require.Contains(t, err.Error(), "context")
	})
}

func TestJSONRoundTrip(t *testing.T) {
	js := newJetStream(t)
	ctx := context.Background()

	kv, err := EnsureKVBucketWithRetry(ctx, js, BucketConfig("test-json", time.Minute), 3)
	require.NoError(t, err)

	type payload struct {
		Sums []float64 `json:"sums"`
	}

	rev, err := PutJSON(ctx, kv, "abc", payload{Sums: []float64{5, 5}})
	require.NoError(t, err)
	require.NotZero(t, rev)

	var got payload
	gotRev, err := GetJSON(ctx, kv, "abc", &got)
	require.NoError(t, err)
	require.Equal(t, rev, gotRev)
	require.Equal(t, []float64{5, 5}, got.Sums)

	_, err = GetJSON(ctx, kv, "missing", &got)
	require.ErrorIs(t, err, jetstream.ErrKeyNotFound)

	_, err = kv.Put(ctx, "broken", []byte("{"))
	require.NoError(t, err)
	_, err = GetJSON(ctx, kv, "broken", &got)
	require.ErrorContains(t, err, "decode broken")

	_, err = PutJSON(ctx, kv, "bad", func() {})
	require.ErrorContains(t, err, "encode bad")
}
