package candidate

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"jobmate/recruitment-service/internal/db"
)

// Queries use $n placeholders in ascending order of first use, which both
// the pgx and sqlite3 drivers bind positionally.
const (
	candidateColumns = `first_name, last_name, email, phone, years_of_experience,
	       additional_recruiter_notes, recruitment_status,
	       date_of_consent_for_recruitment, created_at`

	offersForCandidateQuery = `
		SELECT jo.id, jo.title, jo.description, jo.salary_range, jo.location
		FROM JobOffer jo
		JOIN CandidateJobOffers cjo ON cjo.job_offer_id = jo.id
		WHERE cjo.candidate_email = $1
		ORDER BY jo.id`
)

// Store is the relational persistence of candidates and their offers.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps an open database handle.
func NewStore(conn *sqlx.DB) *Store {
	return &Store{db: conn}
}

// EmailExists reports whether a candidate with exactly this email is stored.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var found string
	err := s.db.GetContext(ctx, &found, `SELECT email FROM candidate WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "lookup candidate by email")
	}
	return true, nil
}

// OfferIDs returns the id of every job offer.
func (s *Store) OfferIDs(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0)
	if err := s.db.SelectContext(ctx, &ids, `SELECT id FROM JobOffer ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "list job offer ids")
	}
	return ids, nil
}

// WithTx runs fn inside a transaction. fn's error is returned unchanged after
// rollback; otherwise the transaction is committed.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// insertCandidate writes one candidate row. created_at is left to the
// storage default.
func insertCandidate(ctx context.Context, tx *sqlx.Tx, c *Candidate) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO candidate (
		    first_name, last_name, email, phone, years_of_experience,
		    additional_recruiter_notes, recruitment_status, date_of_consent_for_recruitment
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.FirstName,
		c.LastName,
		c.Email,
		nullIfEmpty(c.Phone),
		c.YearsOfExperience,
		nullIfEmpty(c.AdditionalRecruiterNotes),
		string(c.RecruitmentStatus),
		consentValue(c.DateOfConsentForRecruitment),
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return errDuplicate
		}
		return errors.Wrap(err, "insert candidate")
	}
	return nil
}

// insertOfferLinks writes one CandidateJobOffers row per offer id.
func insertOfferLinks(ctx context.Context, tx *sqlx.Tx, email string, offerIDs []int64) error {
	for _, id := range offerIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO CandidateJobOffers (candidate_email, job_offer_id) VALUES ($1, $2)`,
			email, id,
		)
		if err != nil {
			return errors.Wrapf(err, "link candidate to job offer %d", id)
		}
	}
	return nil
}

// CandidateByEmail reads one candidate without its offers.
func (s *Store) CandidateByEmail(ctx context.Context, email string) (*Candidate, error) {
	var row candidateRow
	err := s.db.GetContext(ctx, &row,
		`SELECT `+candidateColumns+` FROM candidate WHERE email = $1`, email)
	if err != nil {
		return nil, errors.Wrapf(err, "read candidate %s", email)
	}
	c := row.toCandidate()
	return &c, nil
}

// OffersForCandidate returns the offers linked to email, ordered by id.
func (s *Store) OffersForCandidate(ctx context.Context, email string) ([]JobOffer, error) {
	var rows []offerRow
	if err := s.db.SelectContext(ctx, &rows, offersForCandidateQuery, email); err != nil {
		return nil, errors.Wrapf(err, "read job offers of %s", email)
	}
	offers := make([]JobOffer, 0, len(rows))
	for _, r := range rows {
		offers = append(offers, r.toJobOffer())
	}
	return offers, nil
}

// CountCandidates returns the number of stored candidates.
func (s *Store) CountCandidates(ctx context.Context) (int, error) {
	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM candidate`); err != nil {
		return 0, errors.Wrap(err, "count candidates")
	}
	return total, nil
}

// ListCandidates returns up to limit candidates starting at offset, oldest
// first.
func (s *Store) ListCandidates(ctx context.Context, limit, offset int) ([]Candidate, error) {
	var rows []candidateRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+candidateColumns+`
		 FROM candidate
		 ORDER BY created_at, email
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list candidates")
	}
	out := make([]Candidate, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toCandidate())
	}
	return out, nil
}

// StatusCounts returns the number of candidates per recruitment status.
// Every known status is present, with zero when unused.
func (s *Store) StatusCounts(ctx context.Context) (map[RecruitmentStatus]int, error) {
	var rows []struct {
		Status string `db:"recruitment_status"`
		N      int    `db:"n"`
	}
	err := s.db.SelectContext(ctx, &rows,
		`SELECT COALESCE(recruitment_status, '') AS recruitment_status, COUNT(*) AS n
		 FROM candidate
		 GROUP BY COALESCE(recruitment_status, '')`)
	if err != nil {
		return nil, errors.Wrap(err, "count candidates by status")
	}

	counts := make(map[RecruitmentStatus]int, len(AllStatuses))
	for _, st := range AllStatuses {
		counts[st] = 0
	}
	for _, r := range rows {
		counts[RecruitmentStatus(r.Status)] = r.N
	}
	return counts, nil
}

func consentValue(d *Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.UTC()
}
