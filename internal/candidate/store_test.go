package candidate_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"jobmate/recruitment-service/internal/apperr"
	"jobmate/recruitment-service/internal/candidate"
	"jobmate/recruitment-service/internal/candidate/mocks"
)

// firstIndex always asks for one offer and picks the first id.
func firstIndex(int) int { return 0 }

func newMockedService(t *testing.T) (*candidate.Service, sqlmock.Sqlmock, *mocks.MockSyncer) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	ctrl := gomock.NewController(t)
	syncer := mocks.NewMockSyncer(ctrl)
	store := candidate.NewStore(sqlx.NewDb(sqlDB, "sqlmock"))
	svc := candidate.NewService(store, syncer, candidate.NopPublisher{}, candidate.NewOfferSelector(firstIndex), zap.NewNop())
	return svc, mock, syncer
}

func expectPreTx(mock sqlmock.Sqlmock, email string) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT email FROM candidate WHERE email = $1`)).
		WithArgs(email).
		WillReturnRows(sqlmock.NewRows([]string{"email"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM JobOffer`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)).AddRow(int64(9)))
}

func TestPersist_LinkFailureRollsBackWithoutLegacyPush(t *testing.T) {
	svc, mock, syncer := newMockedService(t)
	syncer.EXPECT().Push(gomock.Any(), gomock.Any()).Times(0)

	expectPreTx(mock, "john@example.com")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO candidate`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO CandidateJobOffers`)).
		WithArgs("john@example.com", int64(7)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), validCandidate("john@example.com"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	_, isAppErr := apperr.As(err)
	assert.False(t, isAppErr, "storage faults are not user-facing")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersist_LegacyFailureRollsBack(t *testing.T) {
	svc, mock, syncer := newMockedService(t)
	legacyErr := apperr.Server("Failed to push candidate to the legacy system")
	syncer.EXPECT().Push(gomock.Any(), gomock.Any()).Return(legacyErr)

	expectPreTx(mock, "john@example.com")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO candidate`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO CandidateJobOffers`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), validCandidate("john@example.com"))

	assert.Same(t, legacyErr, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersist_CommitFailure(t *testing.T) {
	svc, mock, syncer := newMockedService(t)
	syncer.EXPECT().Push(gomock.Any(), gomock.Any()).Return(nil)

	expectPreTx(mock, "john@example.com")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO candidate`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO CandidateJobOffers`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	_, err := svc.Create(context.Background(), validCandidate("john@example.com"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailExists_QueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	store := candidate.NewStore(sqlx.NewDb(sqlDB, "sqlmock"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT email FROM candidate`)).
		WillReturnError(errors.New("connection reset"))

	_, err = store.EmailExists(context.Background(), "x@example.com")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lookup candidate by email")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_SkipsQueryBeyondRange(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	svc := candidate.NewService(candidate.NewStore(sqlx.NewDb(sqlDB, "sqlmock")), nil, nil, nil, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM candidate`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(25)))

	page, err := svc.List(context.Background(), 4, 10)
	require.NoError(t, err)

	assert.Empty(t, page.Data)
	assert.Equal(t, candidate.PageMeta{Page: 4, Limit: 10, Total: 25, TotalPages: 3}, page.Meta)
	assert.NoError(t, mock.ExpectationsWereMet(), "no listing query expected beyond the last page")
}
