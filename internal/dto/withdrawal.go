package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalRequestDTO struct {
	Amount      decimal.Decimal `json:"amount" example:"50.00"`
	Destination string          `json:"destination" example:"2377225624"`
}

type WithdrawalReviewRequestDTO struct {
	Approve bool `json:"approve" example:"true"`
}

type WithdrawalResponseDTO struct {
	ID          string          `json:"id" example:"8f14e45f-ceea-4e07-8c65-4b1a0f0f4b6a"`
	Amount      decimal.Decimal `json:"amount" example:"50.00"`
	Destination string          `json:"destination" example:"2377225624"`
	Status      string          `json:"status" example:"pending"`
	CreatedAt   time.Time       `json:"created_at" example:"2025-12-09T16:09:57+03:00"`
	ReviewedAt  *time.Time      `json:"reviewed_at,omitempty"`
}
