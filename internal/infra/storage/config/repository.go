package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	"github.com/m04kA/ReDe-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/ReDe-ReservationService/pkg/psqlbuilder"
)

const table = "facility_config"

// Repository репозиторий часов работы сооружений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации сооружений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByFacility получает конфигурацию сооружения
// Если записи нет, возвращает ErrConfigNotFound - вызывающий код подставляет значения по умолчанию
func (r *Repository) GetByFacility(ctx context.Context, facility domain.Facility) (*domain.FacilityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("facility", "open_hour", "close_hour", "is_open", "updated_at").
		From(table).
		Where(squirrel.Eq{"facility": string(facility)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacility - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.FacilityConfig
	var name string
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&name,
		&cfg.OpenHour,
		&cfg.CloseHour,
		&cfg.IsOpen,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacility - scan config: %v", ErrScanRow, err)
	}

	cfg.Facility = domain.Facility(name)
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// GetAll получает все сохраненные конфигурации
func (r *Repository) GetAll(ctx context.Context) ([]*domain.FacilityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("facility", "open_hour", "close_hour", "is_open", "updated_at").
		From(table).
		OrderBy("facility ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.FacilityConfig, 0)
	for rows.Next() {
		var cfg domain.FacilityConfig
		var name string
		var updatedAt sql.NullTime

		if err := rows.Scan(&name, &cfg.OpenHour, &cfg.CloseHour, &cfg.IsOpen, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}

		cfg.Facility = domain.Facility(name)
		cfg.UpdatedAt = updatedAt.Time
		configs = append(configs, &cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или обновляет конфигурацию сооружения
func (r *Repository) Upsert(ctx context.Context, cfg *domain.FacilityConfig) (*domain.FacilityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("facility", "open_hour", "close_hour", "is_open").
		Values(string(cfg.Facility), cfg.OpenHour, cfg.CloseHour, cfg.IsOpen).
		Suffix("ON CONFLICT (facility) DO UPDATE SET " +
			"open_hour = EXCLUDED.open_hour, " +
			"close_hour = EXCLUDED.close_hour, " +
			"is_open = EXCLUDED.is_open, " +
			"updated_at = NOW() " +
			"RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.UpdatedAt = updatedAt.Time
	return cfg, nil
}
