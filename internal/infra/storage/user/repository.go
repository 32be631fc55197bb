package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	"github.com/m04kA/ReDe-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/ReDe-ReservationService/pkg/psqlbuilder"
)

const (
	table = "users"

	// pgUniqueViolation код ошибки PostgreSQL для нарушения уникальности
	pgUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"dni",
	"password_hash",
	"email",
	"first_name",
	"last_name",
	"is_staff",
	"is_active",
	"date_joined",
	"last_login",
}

// Repository репозиторий пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует пользователя
// Повторный DNI возвращает ErrDNIAlreadyExists
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("dni", "password_hash", "email", "first_name", "last_name", "is_staff", "is_active").
		Values(u.DNI, u.PasswordHash, u.Email, u.FirstName, u.LastName, u.IsStaff, u.IsActive).
		Suffix("RETURNING id, date_joined").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.DateJoined)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrDNIAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return u, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByDNI получает пользователя по DNI (логину)
func (r *Repository) GetByDNI(ctx context.Context, dni string) (*domain.User, error) {
	return r.getOne(ctx, "GetByDNI", squirrel.Eq{"dni": dni})
}

// UpdateLastLogin фиксирует время последнего входа
func (r *Repository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("last_login", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateLastLogin - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateLastLogin - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateLastLogin - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ListWithStats возвращает пользователей с количеством бронирований и фиансой
// search ищет по вхождению в DNI или email, новые пользователи первыми
func (r *Repository) ListWithStats(ctx context.Context, search string) ([]*domain.UserWithStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"u.id",
		"u.dni",
		"u.email",
		"u.first_name",
		"u.last_name",
		"u.is_staff",
		"u.is_active",
		"u.date_joined",
		"u.last_login",
		"COUNT(r.id) AS reservations_count",
		"COALESCE(d.amount, 0) AS deposit",
	).
		From(table + " u").
		LeftJoin("reservations r ON r.user_id = u.id").
		LeftJoin("deposits d ON d.user_id = u.id").
		GroupBy("u.id", "d.amount").
		OrderBy("u.date_joined DESC")

	if search != "" {
		pattern := "%" + search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"u.dni": pattern},
			squirrel.ILike{"u.email": pattern},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithStats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithStats - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	users := make([]*domain.UserWithStats, 0)
	for rows.Next() {
		var u domain.UserWithStats
		var lastLogin sql.NullTime

		err := rows.Scan(
			&u.ID,
			&u.DNI,
			&u.Email,
			&u.FirstName,
			&u.LastName,
			&u.IsStaff,
			&u.IsActive,
			&u.DateJoined,
			&lastLogin,
			&u.ReservationsCount,
			&u.Deposit,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithStats - scan row: %v", ErrScanRow, err)
		}

		if lastLogin.Valid {
			u.LastLogin = &lastLogin.Time
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithStats - rows error: %v", ErrScanRow, err)
	}

	return users, nil
}

// Count считает зарегистрированных пользователей
func (r *Repository) Count(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Eq) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var u domain.User
	var lastLogin sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.DNI,
		&u.PasswordHash,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.IsStaff,
		&u.IsActive,
		&u.DateJoined,
		&lastLogin,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, method, err)
	}

	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}

	return &u, nil
}
