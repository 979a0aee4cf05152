package enums

import "fmt"

// GiftCardStatus describes the lifecycle of a purchased gift card.
type GiftCardStatus string

const (
	GiftCardStatusPending  GiftCardStatus = "pending"
	GiftCardStatusPaid     GiftCardStatus = "paid"
	GiftCardStatusRedeemed GiftCardStatus = "redeemed"
	GiftCardStatusVoid     GiftCardStatus = "void"
)

var validGiftCardStatuses = []GiftCardStatus{
	GiftCardStatusPending,
	GiftCardStatusPaid,
	GiftCardStatusRedeemed,
	GiftCardStatusVoid,
}

// String returns the literal string for the status.
func (g GiftCardStatus) String() string {
	return string(g)
}

// IsValid reports whether the status is known.
func (g GiftCardStatus) IsValid() bool {
	for _, candidate := range validGiftCardStatuses {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGiftCardStatus converts raw input into a GiftCardStatus.
func ParseGiftCardStatus(value string) (GiftCardStatus, error) {
	for _, candidate := range validGiftCardStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid gift card status %q", value)
}
