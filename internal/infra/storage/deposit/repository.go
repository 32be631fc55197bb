package deposit

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

const table = "deposits"

// Repository репозиторий фиансы пользователей
// Запись создается лениво: отсутствие строки равно нулевой фиансе
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория фиансы
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает фиансу пользователя
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) Get(ctx context.Context, userID int64) (*domain.Deposit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("user_id", "amount", "updated_at").
		From(table).
		Where(squirrel.Eq{"user_id": userID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %w", ErrBuildQuery, err)
	}

	var d domain.Deposit
	err = executor.QueryRowContext(ctx, query, args...).Scan(&d.UserID, &d.Amount, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.Deposit{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan deposit: %w", ErrScanRow, err)
	}

	return &d, nil
}

// Add изменяет фиансу на delta и возвращает новую сумму
// Сумма не опускается ниже нуля
func (r *Repository) Add(ctx context.Context, userID int64, delta int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("user_id", "amount").
		Values(userID, squirrel.Expr("GREATEST(?, 0)", delta)).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET amount = GREATEST(deposits.amount + ?, 0), updated_at = NOW() RETURNING amount", delta).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Add - build upsert query: %w", ErrBuildQuery, err)
	}

	var amount int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&amount); err != nil {
		return 0, fmt.Errorf("%w: Add - execute upsert: %w", ErrExecQuery, err)
	}

	return amount, nil
}

// Set устанавливает фиансу пользователя (админская операция)
func (r *Repository) Set(ctx context.Context, userID int64, amount int) (*domain.Deposit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("user_id", "amount").
		Values(userID, amount).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW() RETURNING user_id, amount, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Set - build upsert query: %w", ErrBuildQuery, err)
	}

	var d domain.Deposit
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&d.UserID, &d.Amount, &d.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Set - execute upsert: %w", ErrExecQuery, err)
	}

	return &d, nil
}
