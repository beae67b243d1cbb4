package appointment

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db := dbmetrics.Wrap(sqlDB, nil)
	return NewRepository(db), db, mock
}

func appointmentRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepo(t)
	pro := uuid.New()
	start := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 18, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))

	created, err := repo.Create(context.Background(), &domain.Appointment{
		ClientName:     "Maria",
		ClientPhone:    "+5511999990000",
		ProfessionalID: &pro,
		ServiceID:      7,
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		Status:         domain.StatusScheduled,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ExclusionViolation(t *testing.T) {
	repo, _, mock := newRepo(t)
	pro := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
		WillReturnError(&pq.Error{Code: "23P01", Message: "conflicting key value violates exclusion constraint"})

	_, err := repo.Create(context.Background(), &domain.Appointment{ProfessionalID: &pro, Status: domain.StatusScheduled})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.True(t, IsSlotTaken(err))
	assert.False(t, IsRetryable(err))
}

func TestRepository_Create_SerializationFailure(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.Create(context.Background(), &domain.Appointment{Status: domain.StatusScheduled})

	assert.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.True(t, IsRetryable(err))
}

func TestIsRetryable_WrappedCommitError(t *testing.T) {
	err := errors.Join(errors.New("commit"), &pq.Error{Code: "40P01"})
	assert.True(t, IsRetryable(err))
	assert.False(t, IsRetryable(errors.New("connection refused")))
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 5)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_List_ScansNullableColumns(t *testing.T) {
	repo, _, mock := newRepo(t)
	pro := uuid.New()
	start := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)

	rows := appointmentRows().
		AddRow(1, "Ana", "+551100", nil, pro.String(), 3, start, start.Add(time.Hour), "scheduled", nil, nil, "Corte", 80.0, nil, nil, start, start).
		AddRow(2, "Bia", "+551101", 9, nil, 3, start.Add(2*time.Hour), start.Add(3*time.Hour), "no_show", "vip", nil, "Corte", 80.0, nil, nil, start, start)

	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments WHERE")).WillReturnRows(rows)

	from := start.Add(-13 * time.Hour)
	to := from.Add(24 * time.Hour)
	list, err := repo.List(context.Background(), domain.AppointmentsFilter{From: &from, To: &to})

	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, pro, *list[0].ProfessionalID)
	assert.Nil(t, list[0].ClientID)
	assert.Nil(t, list[0].Notes)
	assert.Equal(t, domain.StatusScheduled, list[0].Status)

	assert.Nil(t, list[1].ProfessionalID)
	assert.Equal(t, int64(9), *list[1].ClientID)
	assert.Equal(t, "vip", *list[1].Notes)
	assert.Equal(t, domain.StatusNoShow, list[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_ForUpdateOnlyInTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	pro := uuid.New()
	filter := domain.AppointmentsFilter{ProfessionalID: &pro, ForUpdate: true}

	mock.ExpectQuery(`professional_id IS NULL.*ORDER BY start_time ASC, id ASC$`).
		WillReturnRows(appointmentRows())
	_, err := repo.List(context.Background(), filter)
	require.NoError(t, err)

	mock.ExpectBegin()
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).WillReturnRows(appointmentRows())
	_, err = repo.List(dbmetrics.WithTx(context.Background(), tx), filter)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET status = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 10, "client asked")

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_GetRevenueSummary(t *testing.T) {
	repo, _, mock := newRepo(t)
	from := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(service_price), 0)")).
		WithArgs(domain.StatusCompleted, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(4, 320.5))

	summary, err := repo.GetRevenueSummary(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, 4, summary.AppointmentsCount)
	assert.InDelta(t, 320.5, summary.Total, 0.001)
}

func TestRepository_CountByStatus(t *testing.T) {
	repo, _, mock := newRepo(t)
	from := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("scheduled", 5).
			AddRow("completed", 2))

	counts, err := repo.CountByStatus(context.Background(), from, from.Add(24*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, 5, counts[domain.StatusScheduled])
	assert.Equal(t, 2, counts[domain.StatusCompleted])
	assert.Zero(t, counts[domain.StatusCanceled])
}
