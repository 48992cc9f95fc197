package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceResponseDTO struct {
	Current        decimal.Decimal `json:"current" example:"130.00"`
	TotalEarned    decimal.Decimal `json:"total_earned" example:"180.00"`
	TotalWithdrawn decimal.Decimal `json:"total_withdrawn" example:"50.00"`
	PlatformFees   decimal.Decimal `json:"platform_fees" example:"20.00"`
	LastUpdated    time.Time       `json:"last_updated" example:"2025-12-09T16:09:57+03:00"`
}

type TransactionResponseDTO struct {
	ID            string          `json:"id" example:"8f14e45f-ceea-4e07-8c65-4b1a0f0f4b6a"`
	Kind          string          `json:"kind" example:"credit"`
	GrossAmount   decimal.Decimal `json:"gross_amount" example:"200.00"`
	CookShare     decimal.Decimal `json:"cook_share,omitempty" example:"180.00"`
	PlatformShare decimal.Decimal `json:"platform_share,omitempty" example:"20.00"`
	Description   string          `json:"description" example:"payment for order-1"`
	Reference     string          `json:"reference,omitempty" example:"order-1"`
	Status        string          `json:"status" example:"completed"`
	CreatedAt     time.Time       `json:"created_at" example:"2025-12-09T16:09:57+03:00"`
}

type PaginationDTO struct {
	Page       int  `json:"page" example:"2"`
	Limit      int  `json:"limit" example:"10"`
	Total      int  `json:"total" example:"25"`
	TotalPages int  `json:"total_pages" example:"3"`
	HasNext    bool `json:"has_next" example:"true"`
	HasPrev    bool `json:"has_prev" example:"true"`
}

type TransactionListResponseDTO struct {
	Transactions []TransactionResponseDTO `json:"transactions"`
	Pagination   PaginationDTO            `json:"pagination"`
}

type SummaryResponseDTO struct {
	TotalCredits     decimal.Decimal `json:"total_credits" example:"180.00"`
	TotalDebits      decimal.Decimal `json:"total_debits" example:"50.00"`
	TransactionCount int             `json:"transaction_count" example:"2"`
	PlatformFees     decimal.Decimal `json:"platform_fees" example:"20.00"`
}

type ApplyTransactionResponseDTO struct {
	Transaction TransactionResponseDTO `json:"transaction"`
	Balance     decimal.Decimal        `json:"balance" example:"130.00"`
}
