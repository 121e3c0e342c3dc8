package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Withdrawal struct {
	ID       uint   `gorm:"primaryKey"`
	Exchange string `gorm:"index;not null"`
	Address  string `gorm:"index;not null"`
	Coin     string `gorm:"not null"`
	Network  string `gorm:"not null"`

	// decimal string exactly as sent to the exchange
	Amount string `gorm:"type:decimal(38,18);not null"`
	// NULL when no fee lookup succeeded
	Fee decimal.NullDecimal `gorm:"type:decimal(38,18)"`

	// client-side id shared by every attempt of one pair
	RequestID string `gorm:"index"`

	Attempts     int    `gorm:"not null"`
	Status       string `gorm:"index;not null"`
	WithdrawalID string
	LastError    string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

const (
	WithdrawalStatusSuccess = "success"
	WithdrawalStatusFailed  = "failed"
)

// TableName sets the table name for Withdrawal model
func (Withdrawal) TableName() string {
	return "withdrawals"
}
