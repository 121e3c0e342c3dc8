package repositories

import (
	"errors"

	"WithdrawBot/internal/models"

	"gorm.io/gorm"
)

type WithdrawalRepository struct {
	db *gorm.DB
}

// NewWithdrawalRepository creates a new instance of WithdrawalRepository
func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// Migrate creates or updates the withdrawals table
func (r *WithdrawalRepository) Migrate() error {
	return r.db.AutoMigrate(&models.Withdrawal{})
}

// Create adds a new Withdrawal record to the database
func (r *WithdrawalRepository) Create(withdrawal *models.Withdrawal) error {
	if withdrawal == nil {
		return errors.New("withdrawal cannot be nil")
	}
	return r.db.Create(withdrawal).Error
}

// FindByAddress retrieves all withdrawals sent to an address, oldest first
func (r *WithdrawalRepository) FindByAddress(address string) ([]models.Withdrawal, error) {
	if address == "" {
		return nil, errors.New("invalid address")
	}
	var withdrawals []models.Withdrawal
	err := r.db.Where("address = ?", address).
		Order("created_at ASC").
		Find(&withdrawals).Error
	return withdrawals, err
}

// CountByStatus counts withdrawals for an exchange with the given status
func (r *WithdrawalRepository) CountByStatus(exchange, status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Withdrawal{}).
		Where("exchange = ? AND status = ?", exchange, status).
		Count(&count).Error
	return count, err
}
