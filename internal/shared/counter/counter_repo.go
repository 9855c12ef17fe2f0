package counter

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	// Atomic upsert-and-increment per company/type; LAST_INSERT_ID membawa
	// nilai baru kembali tanpa SELECT terpisah pada baris counter.
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
		VALUES (?, ?, LAST_INSERT_ID(1), NOW())
		ON DUPLICATE KEY UPDATE last_value = LAST_INSERT_ID(last_value + 1), updated_at = NOW()
	`, companyID, counterType).Error
	if err != nil {
		return 0, err
	}

	var nextValue int64
	err = r.db.WithContext(ctx).Raw(`SELECT LAST_INSERT_ID()`).Scan(&nextValue).Error
	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
