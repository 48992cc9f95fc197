package dto

import "github.com/shopspring/decimal"

// PaymentEventDTO mirrors the payment-succeeded event published by the
// payment provider, both on the Kafka topic and the webhook fallback.
type PaymentEventDTO struct {
	OwnerID     int             `json:"owner_id" example:"1"`
	TotalAmount decimal.Decimal `json:"total_amount" example:"200.00"`
	Reference   string          `json:"reference" example:"order-1"`
	Description string          `json:"description,omitempty" example:"payment for order-1"`
}
