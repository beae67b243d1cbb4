package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// roleProfessional профили сотрудников хранятся в общей таблице profiles
const roleProfessional = "professional"

// Repository репозиторий услуг и профессионалов салона
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"price",
		"average_duration_minutes",
		"active",
		"created_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.Price,
		&s.AverageDurationMinutes,
		&s.Active,
		&s.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, wrapError(ErrScanRow, "GetServiceByID - scan service", err)
	}

	return &s, nil
}

// ListServices получает услуги, отсортированные по названию
func (r *Repository) ListServices(ctx context.Context, activeOnly bool) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"price",
		"average_duration_minutes",
		"active",
		"created_at",
	).
		From("services").
		OrderBy("name ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.AverageDurationMinutes, &s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// CreateService создает услугу и возвращает ее с заполненными ID и created_at
func (r *Repository) CreateService(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns("name", "price", "average_duration_minutes", "active").
		Values(svc.Name, svc.Price, svc.AverageDurationMinutes, svc.Active).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	created := *svc
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// UpdateService обновляет название, цену, длительность и активность услуги
func (r *Repository) UpdateService(ctx context.Context, svc *domain.Service) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", svc.Name).
		Set("price", svc.Price).
		Set("average_duration_minutes", svc.AverageDurationMinutes).
		Set("active", svc.Active).
		Where(squirrel.Eq{"id": svc.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateService - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateService", query, args, ErrServiceNotFound)
}

// GetProfessionalByID получает профессионала по ID
func (r *Repository) GetProfessionalByID(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := professionalsSelect().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessionalByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanProfessional(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, wrapError(ErrScanRow, "GetProfessionalByID - scan professional", err)
	}

	return p, nil
}

// ListProfessionals получает профессионалов в порядке списка сотрудников (по имени, затем по id).
// Этот порядок используется при выборе "любого" профессионала.
func (r *Repository) ListProfessionals(ctx context.Context, workingOnly bool) ([]*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := professionalsSelect().OrderBy("full_name ASC", "id ASC")
	if workingOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_working": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapError(ErrExecQuery, "ListProfessionals - execute query", err)
	}
	defer rows.Close()

	professionals := make([]*domain.Professional, 0)
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, wrapError(ErrScanRow, "ListProfessionals - scan row", err)
		}
		professionals = append(professionals, p)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError(ErrScanRow, "ListProfessionals - rows error", err)
	}

	return professionals, nil
}

// SetWorking отмечает начало или конец смены профессионала
func (r *Repository) SetWorking(ctx context.Context, id uuid.UUID, working bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("profiles").
		Set("is_working", working).
		Where(squirrel.Eq{"id": id, "role": roleProfessional}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetWorking - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "SetWorking", query, args, ErrProfessionalNotFound)
}

// UpdateProfessional обновляет имя, телефон и процент комиссии профессионала
func (r *Repository) UpdateProfessional(ctx context.Context, p *domain.Professional) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("profiles").
		Set("full_name", p.FullName).
		Set("phone", p.Phone).
		Set("commission_percentage", p.CommissionPercentage).
		Where(squirrel.Eq{"id": p.ID, "role": roleProfessional}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateProfessional - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateProfessional", query, args, ErrProfessionalNotFound)
}

// GetProfileRole получает роль пользователя из таблицы profiles
func (r *Repository) GetProfileRole(ctx context.Context, userID uuid.UUID) (domain.Role, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("role").
		From("profiles").
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		return "", fmt.Errorf("%w: GetProfileRole - build select query: %v", ErrBuildQuery, err)
	}

	var role domain.Role
	err = executor.QueryRowContext(ctx, query, args...).Scan(&role)
	if err == sql.ErrNoRows {
		return "", ErrProfileNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: GetProfileRole - scan role: %v", ErrScanRow, err)
	}

	return role, nil
}

// execAffectingOne выполняет запрос и возвращает notFound, если не изменилась ни одна строка
func (r *Repository) execAffectingOne(ctx context.Context, executor dbmetrics.DBExecutor, op, query string, args []interface{}, notFound error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapError(ErrExecQuery, op+" - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

func professionalsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"full_name",
		"email",
		"phone",
		"is_working",
		"commission_percentage",
		"created_at",
	).
		From("profiles").
		Where(squirrel.Eq{"role": roleProfessional})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfessional(row rowScanner) (*domain.Professional, error) {
	var p domain.Professional
	var phone sql.NullString
	var working sql.NullBool
	var commission sql.NullFloat64

	if err := row.Scan(&p.ID, &p.FullName, &p.Email, &phone, &working, &commission, &p.CreatedAt); err != nil {
		return nil, err
	}

	if phone.Valid {
		p.Phone = &phone.String
	}
	p.IsWorking = working.Valid && working.Bool
	if commission.Valid {
		p.CommissionPercentage = &commission.Float64
	}

	return &p, nil
}
