package giftcards

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mayaserrano/framelight-backend/pkg/db/models"
	"github.com/mayaserrano/framelight-backend/pkg/enums"
)

// PurchaseRequest carries a gift card purchase. SourceID is the tokenized
// payment method from the Square web SDK.
type PurchaseRequest struct {
	Amount         string `json:"amount" validate:"required"`
	PurchaserEmail string `json:"purchaserEmail" validate:"required,email"`
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
	Message        string `json:"message" validate:"omitempty,max=500"`
	SourceID       string `json:"sourceId" validate:"required"`
}

// GiftCardResponse is the public view of a gift card.
type GiftCardResponse struct {
	ID             uuid.UUID            `json:"id"`
	Code           string               `json:"code"`
	Amount         decimal.Decimal      `json:"amount"`
	Currency       string               `json:"currency"`
	PurchaserEmail string               `json:"purchaserEmail"`
	RecipientEmail string               `json:"recipientEmail"`
	Message        string               `json:"message,omitempty"`
	Status         enums.GiftCardStatus `json:"status"`
	CreatedAt      time.Time            `json:"createdAt"`
}

func fromModel(card *models.GiftCard) GiftCardResponse {
	resp := GiftCardResponse{
		ID:             card.ID,
		Code:           card.Code,
		Amount:         card.Amount,
		Currency:       card.Currency,
		PurchaserEmail: card.PurchaserEmail,
		RecipientEmail: card.RecipientEmail,
		Status:         card.Status,
		CreatedAt:      card.CreatedAt,
	}
	if card.Message != nil {
		resp.Message = *card.Message
	}
	return resp
}
