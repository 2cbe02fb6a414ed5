package request

import "github.com/google/uuid"

// CheckoutRequest stands in for the payment flow. Card details are accepted
// for client compatibility and dropped here; nothing validates or stores them.
type CheckoutRequest struct {
	PlanID uuid.UUID    `json:"plan_id" binding:"required"`
	Card   *CardDetails `json:"card,omitempty"`
}

type CardDetails struct {
	Holder string `json:"holder"`
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}
