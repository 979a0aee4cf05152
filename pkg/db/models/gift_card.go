package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mayaserrano/framelight-backend/pkg/enums"
)

// GiftCard records a purchased studio gift card and its payment reference.
type GiftCard struct {
	ID             uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Code           string               `gorm:"column:code;not null;uniqueIndex"`
	Amount         decimal.Decimal      `gorm:"column:amount;type:numeric(10,2);not null"`
	Currency       string               `gorm:"column:currency;not null;default:'USD'"`
	PurchaserEmail string               `gorm:"column:purchaser_email;not null"`
	RecipientEmail string               `gorm:"column:recipient_email;not null"`
	Message        *string              `gorm:"column:message"`
	PaymentID      *string              `gorm:"column:payment_id"`
	Status         enums.GiftCardStatus `gorm:"column:status;not null;default:'pending'"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
