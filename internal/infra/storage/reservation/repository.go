package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	"github.com/m04kA/ReDe-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/ReDe-ReservationService/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"user_id",
	"facility",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("user_id", "facility", "start_time", "end_time").
		Values(res.UserID, string(res.Facility), res.StartTime, res.EndTime).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return res, nil
}

// Update обновляет сооружение и интервал бронирования
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("facility", string(res.Facility)).
		Set("start_time", res.StartTime).
		Set("end_time", res.EndTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return res, nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// ListActiveByUser возвращает незавершенные бронирования пользователя, ближайшие первыми
func (r *Repository) ListActiveByUser(ctx context.Context, userID int64, now time.Time) ([]*domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Gt{"end_time": now}).
		OrderBy("start_time ASC")

	return r.list(ctx, "ListActiveByUser", selectBuilder)
}

// ListHistoryByUser возвращает завершенные бронирования пользователя, последние первыми
func (r *Repository) ListHistoryByUser(ctx context.Context, userID int64, now time.Time) ([]*domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.LtOrEq{"end_time": now}).
		OrderBy("start_time DESC")

	return r.list(ctx, "ListHistoryByUser", selectBuilder)
}

// CountActiveByUser считает незавершенные бронирования пользователя
// excludeID исключает изменяемое бронирование из подсчета
func (r *Repository) CountActiveByUser(ctx context.Context, userID int64, now time.Time, excludeID *int64) (int, error) {
	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Gt{"end_time": now})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	return r.count(ctx, "CountActiveByUser", selectBuilder)
}

// FindOverlapping ищет бронирования сооружения, пересекающиеся с [start, end)
// Внутри транзакции найденные строки блокируются (FOR UPDATE)
func (r *Repository) FindOverlapping(ctx context.Context, facility domain.Facility, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"facility": string(facility)}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, "FindOverlapping", selectBuilder)
}

// ListByFacilityAndRange возвращает бронирования сооружения, пересекающиеся с [from, to)
// Используется для расчета доступных слотов на день
func (r *Repository) ListByFacilityAndRange(ctx context.Context, facility domain.Facility, from, to time.Time) ([]*domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"facility": string(facility)}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC")

	return r.list(ctx, "ListByFacilityAndRange", selectBuilder)
}

// ListWithFilter получает бронирования для администратора с гибкой фильтрацией
// Сортировка по времени начала, последние первыми
//
// Примеры использования:
//
// 1. Все бронирования:
//    filter := domain.ReservationsFilter{}
//
// 2. Бассейн за май:
//    facility := domain.FacilityPool1
//    filter := domain.ReservationsFilter{Facility: &facility, From: &mayStart, To: &juneStart}
//
// 3. Поиск по DNI или email:
//    filter := domain.ReservationsFilter{Search: "12345678"}
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"r.id",
		"r.user_id",
		"r.facility",
		"r.start_time",
		"r.end_time",
		"r.created_at",
		"r.updated_at",
		"u.dni",
	).
		From(table + " r").
		Join("users u ON u.id = r.user_id").
		OrderBy("r.start_time DESC")

	if filter.Facility != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.facility": string(*filter.Facility)})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"r.start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"r.start_time": *filter.To})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.user_id": *filter.UserID})
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"u.dni": pattern},
			squirrel.ILike{"u.email": pattern},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		var res domain.Reservation
		var facility string

		err := rows.Scan(
			&res.ID,
			&res.UserID,
			&facility,
			&res.StartTime,
			&res.EndTime,
			&res.CreatedAt,
			&res.UpdatedAt,
			&res.UserDNI,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithFilter - scan row: %w", ErrScanRow, err)
		}

		res.Facility = domain.Facility(facility)
		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}

// DeleteEndedBefore удаляет бронирования, закончившиеся раньше before
// Возвращает количество удаленных строк
func (r *Repository) DeleteEndedBefore(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Lt{"end_time": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEndedBefore - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEndedBefore - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEndedBefore - get rows affected: %w", ErrExecQuery, err)
	}

	return deleted, nil
}

// CountAll считает все бронирования
func (r *Repository) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, "CountAll", psqlbuilder.Select("COUNT(*)").From(table))
}

// CountActive считает незавершенные бронирования всех пользователей
func (r *Repository) CountActive(ctx context.Context, now time.Time) (int, error) {
	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Gt{"end_time": now})

	return r.count(ctx, "CountActive", selectBuilder)
}

// CountByFacility считает бронирования по сооружениям
func (r *Repository) CountByFacility(ctx context.Context) (map[domain.Facility]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("facility", "COUNT(*)").
		From(table).
		GroupBy("facility").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByFacility - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByFacility - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.Facility]int, len(domain.AllFacilities))
	for rows.Next() {
		var facility string
		var count int
		if err := rows.Scan(&facility, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByFacility - scan row: %w", ErrScanRow, err)
		}
		counts[domain.Facility(facility)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByFacility - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

// Helper methods

// list выполняет SELECT и сканирует список бронирований
func (r *Repository) list(ctx context.Context, method string, selectBuilder squirrel.SelectBuilder) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, method, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}

	return reservations, nil
}

// count выполняет SELECT COUNT(*)
func (r *Repository) count(ctx context.Context, method string, selectBuilder squirrel.SelectBuilder) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build count query: %w", ErrBuildQuery, method, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %w", ErrScanRow, method, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует строку в порядке columns
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var facility string

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&facility,
		&res.StartTime,
		&res.EndTime,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Facility = domain.Facility(facility)
	return &res, nil
}

// likeEscaper экранирует метасимволы LIKE; в Postgres escape-символ по умолчанию обратный слеш
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
