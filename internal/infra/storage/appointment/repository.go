package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"client_name",
	"client_phone",
	"client_id",
	"professional_id",
	"service_id",
	"start_time",
	"end_time",
	"status",
	"notes",
	"created_by",
	"service_name",
	"service_price",
	"cancellation_reason",
	"canceled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Если в контексте есть транзакция, использует её.
// Пересечение с активной записью того же профессионала отклоняется
// exclusion constraint'ом и возвращается как ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"client_name",
			"client_phone",
			"client_id",
			"professional_id",
			"service_id",
			"start_time",
			"end_time",
			"status",
			"notes",
			"created_by",
			"service_name",
			"service_price",
		).
		Values(
			a.ClientName,
			a.ClientPhone,
			a.ClientID,
			a.ProfessionalID,
			a.ServiceID,
			a.StartTime.UTC(),
			a.EndTime.UTC(),
			a.Status,
			a.Notes,
			a.CreatedBy,
			a.ServiceName,
			a.ServicePrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt)
	if err != nil {
		if classified := classifyWriteError(err); classified != nil {
			return nil, fmt.Errorf("%w: Create: %v", classified, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись по ID.
// Внутри транзакции строка блокируется до ее завершения.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// List получает записи с фильтрацией.
// Период задается пересечением: возвращаются записи, у которых
// start_time < To и end_time > From, поэтому запись, начавшаяся
// накануне и заканчивающаяся в запрошенный день, тоже попадает в выборку.
//
// Результат отсортирован по start_time ASC.
// ForUpdate добавляет блокировку строк, только если в контексте есть транзакция.
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	// Фильтрация по профессионалу: записи без профессионала занимают всех
	if filter.ProfessionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"professional_id": *filter.ProfessionalID},
			squirrel.Eq{"professional_id": nil},
		})
	}

	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": filter.To.UTC()})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": filter.From.UTC()})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCanceled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCanceled})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC", "id ASC")

	if filter.ForUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if classified := classifyWriteError(err); classified != nil {
			return nil, fmt.Errorf("%w: List: %v", classified, err)
		}
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// Cancel отменяет запись с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCanceled).
		Set("cancellation_reason", reason).
		Set("canceled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Cancel", query, args)
}

// CountByStatus считает записи, начинающиеся в периоде [from, to), по статусам
func (r *Repository) CountByStatus(ctx context.Context, from, to time.Time) (map[domain.AppointmentStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From(table).
		Where(squirrel.GtOrEq{"start_time": from.UTC()}).
		Where(squirrel.Lt{"start_time": to.UTC()}).
		GroupBy("status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.AppointmentStatus]int)
	for rows.Next() {
		var status domain.AppointmentStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// GetRevenueSummary выручка по выполненным записям, начинающимся в периоде [from, to)
func (r *Repository) GetRevenueSummary(ctx context.Context, from, to time.Time) (*domain.RevenueSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)", "COALESCE(SUM(service_price), 0)").
		From(table).
		Where(squirrel.Eq{"status": domain.StatusCompleted}).
		Where(squirrel.GtOrEq{"start_time": from.UTC()}).
		Where(squirrel.Lt{"start_time": to.UTC()}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRevenueSummary - build select query: %v", ErrBuildQuery, err)
	}

	var summary domain.RevenueSummary
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&summary.AppointmentsCount, &summary.Total); err != nil {
		return nil, fmt.Errorf("%w: GetRevenueSummary - scan row: %v", ErrScanRow, err)
	}

	return &summary, nil
}

// GetRevenueByProfessional выручка и ставка комиссии по профессионалам за период [from, to)
func (r *Repository) GetRevenueByProfessional(ctx context.Context, from, to time.Time) ([]*domain.ProfessionalRevenue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"p.id",
		"p.full_name",
		"p.commission_percentage",
		"COUNT(a.id)",
		"COALESCE(SUM(a.service_price), 0)",
	).
		From("appointments a").
		Join("profiles p ON p.id = a.professional_id").
		Where(squirrel.Eq{"a.status": domain.StatusCompleted}).
		Where(squirrel.GtOrEq{"a.start_time": from.UTC()}).
		Where(squirrel.Lt{"a.start_time": to.UTC()}).
		GroupBy("p.id", "p.full_name", "p.commission_percentage").
		OrderBy("p.full_name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRevenueByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRevenueByProfessional - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ProfessionalRevenue, 0)
	for rows.Next() {
		var item domain.ProfessionalRevenue
		var commission sql.NullFloat64
		if err := rows.Scan(&item.ProfessionalID, &item.FullName, &commission, &item.AppointmentsCount, &item.Total); err != nil {
			return nil, fmt.Errorf("%w: GetRevenueByProfessional - scan row: %v", ErrScanRow, err)
		}
		if commission.Valid {
			pct := commission.Float64
			item.CommissionPercentage = &pct
		}
		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRevenueByProfessional - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if classified := classifyWriteError(err); classified != nil {
			return fmt.Errorf("%w: %s: %v", classified, op, err)
		}
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var clientID sql.NullInt64
	var professionalID, createdBy uuid.NullUUID
	var notes, cancellationReason sql.NullString
	var canceledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.ClientName,
		&a.ClientPhone,
		&clientID,
		&professionalID,
		&a.ServiceID,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&notes,
		&createdBy,
		&a.ServiceName,
		&a.ServicePrice,
		&cancellationReason,
		&canceledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if clientID.Valid {
		a.ClientID = &clientID.Int64
	}
	if professionalID.Valid {
		a.ProfessionalID = &professionalID.UUID
	}
	if createdBy.Valid {
		a.CreatedBy = &createdBy.UUID
	}
	if notes.Valid {
		a.Notes = &notes.String
	}
	if cancellationReason.Valid {
		a.CancellationReason = &cancellationReason.String
	}
	if canceledAt.Valid {
		a.CanceledAt = &canceledAt.Time
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
