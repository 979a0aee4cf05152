package giftcards

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	sq "github.com/square/square-go-sdk"
	"gorm.io/gorm"

	"github.com/mayaserrano/framelight-backend/pkg/config"
	"github.com/mayaserrano/framelight-backend/pkg/db/models"
	"github.com/mayaserrano/framelight-backend/pkg/enums"
	pkgerrors "github.com/mayaserrano/framelight-backend/pkg/errors"
	"github.com/mayaserrano/framelight-backend/pkg/logger"
	"github.com/mayaserrano/framelight-backend/pkg/square"
)

// codeAlphabet avoids ambiguous characters in redemption codes.
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 16
)

// Service defines the behavior needed by the gift card controllers.
type Service interface {
	Purchase(ctx context.Context, req PurchaseRequest) (*GiftCardResponse, error)
	Lookup(ctx context.Context, code string) (*GiftCardResponse, error)
	Redeem(ctx context.Context, code string) (*GiftCardResponse, error)
}

type paymentCreator interface {
	CreatePayment(ctx context.Context, params square.PaymentParams) (*sq.Payment, error)
}

type service struct {
	repo     Repository
	payments paymentCreator
	cfg      config.GiftCardsConfig
	logger   *logger.Logger
}

// ServiceParams bundles the dependencies required to build a gift card service.
type ServiceParams struct {
	Repo     Repository
	Payments paymentCreator
	Config   config.GiftCardsConfig
	Logger   *logger.Logger
}

// NewService constructs a gift card service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("gift card repository is required")
	}
	if params.Payments == nil {
		return nil, fmt.Errorf("payment client is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:     params.Repo,
		payments: params.Payments,
		cfg:      params.Config,
		logger:   params.Logger,
	}, nil
}

// Purchase charges the payment source and issues a paid card. The Square
// idempotency key is derived inside the payment client.
func (s *service) Purchase(ctx context.Context, req PurchaseRequest) (*GiftCardResponse, error) {
	amount, err := s.parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	cents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	currency := s.cfg.Currency
	if currency == "" {
		currency = "USD"
	}

	payment, err := s.payments.CreatePayment(ctx, square.PaymentParams{
		AmountCents: cents,
		Currency:    currency,
		SourceID:    req.SourceID,
		Note:        "framelight gift card",
		ReferenceID: strings.ToLower(strings.TrimSpace(req.PurchaserEmail)),
	})
	if err != nil {
		return nil, err
	}

	code, err := generateCode()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate gift card code")
	}

	card := &models.GiftCard{
		Code:           code,
		Amount:         amount,
		Currency:       currency,
		PurchaserEmail: strings.ToLower(strings.TrimSpace(req.PurchaserEmail)),
		RecipientEmail: strings.ToLower(strings.TrimSpace(req.RecipientEmail)),
		Status:         enums.GiftCardStatusPaid,
	}
	if msg := strings.TrimSpace(req.Message); msg != "" {
		card.Message = &msg
	}
	if payment != nil {
		card.PaymentID = payment.GetID()
	}

	if err := s.repo.Create(ctx, card); err != nil {
		// The charge already went through; surface the stored payment id so
		// support can reconcile manually.
		s.logger.Error(ctx, "gift card persist failed after charge", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store gift card")
	}

	s.logger.Info(ctx, "gift card purchased")
	resp := fromModel(card)
	return &resp, nil
}

func (s *service) Lookup(ctx context.Context, code string) (*GiftCardResponse, error) {
	card, err := s.loadCard(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := fromModel(card)
	return &resp, nil
}

// Redeem moves a card from paid to redeemed. Any other starting status is a
// conflict, never a silent success.
func (s *service) Redeem(ctx context.Context, code string) (*GiftCardResponse, error) {
	normalized := normalizeCode(code)
	updated, err := s.repo.MarkRedeemed(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redeem gift card")
	}
	if !updated {
		card, err := s.loadCard(ctx, normalized)
		if err != nil {
			return nil, err
		}
		return nil, pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("gift card is %s", card.Status))
	}
	return s.Lookup(ctx, normalized)
}

func (s *service) loadCard(ctx context.Context, code string) (*models.GiftCard, error) {
	card, err := s.repo.FindByCode(ctx, normalizeCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "gift card not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load gift card")
	}
	return card, nil
}

func (s *service) parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "invalid amount")
	}
	if amount.Exponent() < -2 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "amount has too many decimal places")
	}
	if !amount.IsPositive() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	max := decimal.NewFromInt(int64(s.cfg.MaxAmount))
	if s.cfg.MaxAmount > 0 && amount.GreaterThan(max) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("amount exceeds the %s maximum", max))
	}
	return amount, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, codeLength)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}
