package stats

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// KeyStatusCounts is the Redis hash holding the latest snapshot. Each status
// is a field; FieldUpdatedAt holds the RFC 3339 time of the snapshot.
const (
	KeyStatusCounts = "recruitment:status_counts"
	FieldUpdatedAt  = "updated_at"
)

// RedisSink writes snapshots to a Redis hash.
type RedisSink struct {
	rdb *redis.Client
}

// NewRedisSink returns a Sink backed by rdb.
func NewRedisSink(rdb *redis.Client) *RedisSink {
	return &RedisSink{rdb: rdb}
}

// Store replaces the hash contents in one MULTI/EXEC.
func (r *RedisSink) Store(ctx context.Context, s Snapshot) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, KeyStatusCounts)
		pipe.HSet(ctx, KeyStatusCounts, hashFields(s))
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "hset %s", KeyStatusCounts)
	}
	return nil
}

func hashFields(s Snapshot) map[string]any {
	fields := make(map[string]any, len(s.Counts)+1)
	for st, n := range s.Counts {
		fields[string(st)] = strconv.Itoa(n)
	}
	fields[FieldUpdatedAt] = s.At.Format(time.RFC3339)
	return fields
}
