// Package stats wires up the cron job that periodically snapshots candidate
// counts per recruitment status into Redis.
package stats

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"jobmate/recruitment-service/internal/candidate"
	"jobmate/recruitment-service/internal/logger"
)

// Counter yields live per-status candidate counts.
type Counter interface {
	StatusCounts(ctx context.Context) (map[candidate.RecruitmentStatus]int, error)
}

// Snapshot is one point-in-time reading of the status counts.
type Snapshot struct {
	Counts map[candidate.RecruitmentStatus]int
	At     time.Time
}

// Sink stores snapshots somewhere other processes can read them.
type Sink interface {
	Store(ctx context.Context, s Snapshot) error
}

// Scheduler wraps robfig/cron and manages the snapshot loop.
type Scheduler struct {
	cron    *cron.Cron
	counter Counter
	sink    Sink
	spec    string // cron spec, e.g. "@every 15m"
	now     func() time.Time
	log     *zap.Logger

	initial sync.WaitGroup // snapshot taken by Start outside cron
}

// New creates a Scheduler that fires on spec.
func New(counter Counter, sink Sink, spec string, log *zap.Logger) *Scheduler {
	log = logger.Component(log, "stats")
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cronLogger{log.Sugar()})),
		counter: counter,
		sink:    sink,
		spec:    spec,
		now:     time.Now,
		log:     log,
	}
}

// Start registers the job and starts the scheduler. One snapshot is taken
// immediately so readers do not wait for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.run(ctx)
	})
	if err != nil {
		return errors.Wrapf(err, "schedule %q", s.spec)
	}

	s.cron.Start()
	s.log.Info("cron started", zap.String("spec", s.spec))

	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.run(ctx)
	}()
	return nil
}

// Stop halts the scheduler and waits for running snapshots to finish,
// including the one taken by Start.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.initial.Wait()
	s.log.Info("cron stopped")
}

// RunOnce takes and stores a single snapshot.
func (s *Scheduler) RunOnce(ctx context.Context) (Snapshot, error) {
	counts, err := s.counter.StatusCounts(ctx)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "read status counts")
	}
	snap := Snapshot{Counts: counts, At: s.now().UTC()}
	if err := s.sink.Store(ctx, snap); err != nil {
		return Snapshot{}, errors.Wrap(err, "store snapshot")
	}
	return snap, nil
}

func (s *Scheduler) run(ctx context.Context) {
	snap, err := s.RunOnce(ctx)
	if err != nil {
		s.log.Error("snapshot failed", zap.Error(err))
		return
	}
	total := 0
	for _, n := range snap.Counts {
		total += n
	}
	s.log.Debug("snapshot stored", zap.Int(logger.FieldCount, total))
}

// cronLogger routes robfig/cron's own messages through zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
