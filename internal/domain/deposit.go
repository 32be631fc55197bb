package domain

import "time"

// Deposit накопительная "фианса" пользователя в евро
type Deposit struct {
	UserID    int64
	Amount    int
	UpdatedAt time.Time
}

// ReachedThreshold проверяет, заблокированы ли новые бронирования
func (d *Deposit) ReachedThreshold(threshold int) bool {
	return d.Amount >= threshold
}

// ClampedAdd возвращает новую сумму после изменения на delta, не опускаясь ниже нуля
func (d *Deposit) ClampedAdd(delta int) int {
	amount := d.Amount + delta
	if amount < 0 {
		return 0
	}
	return amount
}
