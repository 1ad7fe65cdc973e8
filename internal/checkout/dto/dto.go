package dto

import (
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
)

// SessionView is a checkout session plus the values derived from it on read.
type SessionView struct {
	*model.CheckoutSession
	StepName    string          `json:"step_name"`
	TotalSteps  int             `json:"total_steps"`
	Amount      decimal.Decimal `json:"amount"`
	OTPResendIn int             `json:"otp_resend_in"`
}

type OTPStatus struct {
	SentTo   string `json:"sent_to"`
	ResendIn int    `json:"resend_in"`
}

type Confirmation struct {
	OrderID  string `json:"order_id"`
	Redirect string `json:"redirect"`
}
