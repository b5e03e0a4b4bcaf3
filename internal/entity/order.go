package entity

import "time"

type Order struct {
	ID           string      `json:"id"`
	PlanID       string      `json:"plan_id"`
	Amount       int64       `json:"amount"`
	Status       OrderStatus `json:"status"`
	Instructions string      `json:"payment_instructions"`
	CreatedAt    time.Time   `json:"created_at"`
	ExpiresAt    time.Time   `json:"expires_at"`
	PaidAt       *time.Time  `json:"paid_at,omitempty"`
}

type OrderStatus string

const (
	OrderStatusPending     OrderStatus = "pending"
	OrderStatusPaid        OrderStatus = "paid"
	OrderStatusNeedsReview OrderStatus = "needs_review"
	OrderStatusExpired     OrderStatus = "expired"
)
