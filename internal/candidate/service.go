package candidate

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jobmate/recruitment-service/internal/apperr"
	"jobmate/recruitment-service/internal/legacy"
	"jobmate/recruitment-service/internal/logger"
)

const (
	msgCreated = "Candidate created successfully"

	// DefaultPage and DefaultLimit apply when the caller gives no usable value.
	DefaultPage  = 1
	DefaultLimit = 10
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . Syncer,Publisher

var errDuplicate = apperr.Conflict("Candidate with this email already exists")

// Syncer forwards a candidate summary to the legacy system.
type Syncer interface {
	Push(ctx context.Context, p legacy.Payload) error
}

// ─── Service ─────────────────────────────────────────────────────────────────

// Service encapsulates the candidate workflows.
// It has no dependency on net/http and is shared by the HTTP and gRPC transports.
type Service struct {
	store    *Store
	syncer   Syncer
	events   Publisher
	selector *OfferSelector
	log      *zap.Logger
}

// NewService returns a configured Service. A nil syncer, publisher or selector
// is replaced by its no-op or default counterpart.
func NewService(store *Store, syncer Syncer, events Publisher, selector *OfferSelector, log *zap.Logger) *Service {
	if syncer == nil {
		syncer = legacy.Nop{}
	}
	if events == nil {
		events = NopPublisher{}
	}
	if selector == nil {
		selector = NewOfferSelector(nil)
	}
	return &Service{
		store:    store,
		syncer:   syncer,
		events:   events,
		selector: selector,
		log:      logger.Component(log, "candidate"),
	}
}

// ─── Creation ────────────────────────────────────────────────────────────────

// Create validates in, rejects duplicates, assigns 1–3 random job offers and
// persists the candidate together with its offer links in one transaction.
// The legacy push happens inside that transaction: if it fails nothing is
// stored. On success the stored candidate is read back with its offers.
func (s *Service) Create(ctx context.Context, in Candidate) (*CreateResult, error) {
	if err := Validate(&in); err != nil {
		return nil, err
	}

	if err := s.checkDuplicate(ctx, in.Email); err != nil {
		return nil, err
	}

	if err := normalizeStatus(&in); err != nil {
		return nil, err
	}

	offerIDs, err := s.store.OfferIDs(ctx)
	if err != nil {
		return nil, err
	}
	selected, err := s.selector.Select(offerIDs)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, &in, selected); err != nil {
		return nil, err
	}

	created, err := s.assemble(ctx, in.Email)
	if err != nil {
		return nil, err
	}

	s.log.Info("candidate created",
		zap.String(logger.FieldEmail, created.Email),
		zap.Int(logger.FieldCount, len(created.JobOffers)),
	)

	// Non-fatal: the candidate is committed whether or not anyone hears of it.
	if err := s.events.CandidateCreated(ctx, created); err != nil {
		s.log.Warn("publish candidate event failed", zap.String(logger.FieldEmail, created.Email), zap.Error(err))
	}

	return &CreateResult{Message: msgCreated, Candidate: created}, nil
}

func (s *Service) checkDuplicate(ctx context.Context, email string) error {
	exists, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return errDuplicate
	}
	return nil
}

// persist is the transactional writer: candidate row, offer links, legacy
// push, commit. Any error rolls the whole unit back.
func (s *Service) persist(ctx context.Context, c *Candidate, offerIDs []int64) error {
	return s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertCandidate(ctx, tx, c); err != nil {
			return err
		}
		if err := insertOfferLinks(ctx, tx, c.Email, offerIDs); err != nil {
			return err
		}
		return s.syncer.Push(ctx, c.legacyPayload())
	})
}

// assemble re-reads a committed candidate and its offers.
func (s *Service) assemble(ctx context.Context, email string) (*Candidate, error) {
	c, err := s.store.CandidateByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	offers, err := s.store.OffersForCandidate(ctx, email)
	if err != nil {
		return nil, err
	}
	c.JobOffers = offers
	return c, nil
}

// ─── Listing ─────────────────────────────────────────────────────────────────

// List returns one page of candidates with their offers. page and limit below
// 1 fall back to DefaultPage and DefaultLimit. Offers of the page's candidates
// are loaded concurrently; the page keeps storage order.
func (s *Service) List(ctx context.Context, page, limit int) (*Page, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	offset := (page - 1) * limit

	total, err := s.store.CountCandidates(ctx)
	if err != nil {
		return nil, err
	}

	meta := PageMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages(total, limit),
	}
	if total == 0 || offset >= total {
		return &Page{Data: []Candidate{}, Meta: meta}, nil
	}

	candidates, err := s.store.ListCandidates(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range candidates {
		g.Go(func() error {
			offers, err := s.store.OffersForCandidate(gctx, candidates[i].Email)
			if err != nil {
				return err
			}
			candidates[i].JobOffers = offers
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "load job offers for page")
	}

	return &Page{Data: candidates, Meta: meta}, nil
}

// StatusCounts returns live per-status candidate counts.
func (s *Service) StatusCounts(ctx context.Context) (map[RecruitmentStatus]int, error) {
	return s.store.StatusCounts(ctx)
}

func totalPages(total, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
