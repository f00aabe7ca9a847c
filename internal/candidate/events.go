package candidate

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ChannelCandidateCreated is the Redis channel announcing new candidates.
const ChannelCandidateCreated = "EVENT_CANDIDATE_CREATED"

// Publisher announces committed candidates to other services.
type Publisher interface {
	CandidateCreated(ctx context.Context, c *Candidate) error
}

// CreatedEvent is the payload published on ChannelCandidateCreated.
type CreatedEvent struct {
	ID                string            `json:"id"`
	Type              string            `json:"type"`
	Email             string            `json:"email"`
	RecruitmentStatus RecruitmentStatus `json:"recruitmentStatus"`
	JobOfferIDs       []int64           `json:"jobOfferIds"`
	At                time.Time         `json:"at"`
}

// NewCreatedEvent builds the event for a persisted candidate.
func NewCreatedEvent(c *Candidate) CreatedEvent {
	ids := make([]int64, 0, len(c.JobOffers))
	for _, o := range c.JobOffers {
		ids = append(ids, o.ID)
	}
	return CreatedEvent{
		ID:                uuid.NewString(),
		Type:              ChannelCandidateCreated,
		Email:             c.Email,
		RecruitmentStatus: c.RecruitmentStatus,
		JobOfferIDs:       ids,
		At:                time.Now().UTC(),
	}
}

// RedisPublisher publishes events with Redis PUBLISH.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher returns a Publisher backed by rdb.
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

// CandidateCreated publishes a CreatedEvent for c.
func (p *RedisPublisher) CandidateCreated(ctx context.Context, c *Candidate) error {
	event, err := json.Marshal(NewCreatedEvent(c))
	if err != nil {
		return errors.Wrap(err, "marshal candidate event")
	}
	if err := p.rdb.Publish(ctx, ChannelCandidateCreated, event).Err(); err != nil {
		return errors.Wrapf(err, "publish %s", ChannelCandidateCreated)
	}
	return nil
}

// NopPublisher drops events; used when Redis is not configured.
type NopPublisher struct{}

// CandidateCreated does nothing.
func (NopPublisher) CandidateCreated(context.Context, *Candidate) error { return nil }
