package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleCook  string = "cook"
	RoleAdmin string = "admin"
)

const (
	// TransactionKindCredit — earnings from a paid order or donation, split 90/10.
	TransactionKindCredit string = "credit"
	// TransactionKindDebit — an approved withdrawal.
	TransactionKindDebit string = "debit"
)

const (
	TransactionStatusCompleted string = "completed"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

type Ledger struct {
	ID             int             `db:"id"`
	OwnerID        int             `db:"owner_id"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	TotalEarned    decimal.Decimal `db:"total_earned"`
	TotalWithdrawn decimal.Decimal `db:"total_withdrawn"`
	PlatformFees   decimal.Decimal `db:"platform_fees"`
	LastUpdated    time.Time       `db:"last_updated"`
}

type Transaction struct {
	ID            string          `db:"id"`
	LedgerID      int             `db:"ledger_id"`
	Kind          string          `db:"kind"`
	GrossAmount   decimal.Decimal `db:"gross_amount"`
	CookShare     decimal.Decimal `db:"cook_share"`
	PlatformShare decimal.Decimal `db:"platform_share"`
	Description   string          `db:"description"`
	Reference     string          `db:"reference"`
	Status        string          `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
}

// TransactionSummary is the fold over a ledger's full history; it must agree
// with the incrementally maintained counters on Ledger.
type TransactionSummary struct {
	TotalCredits     decimal.Decimal `db:"total_credits"`
	TotalDebits      decimal.Decimal `db:"total_debits"`
	TransactionCount int             `db:"transaction_count"`
	PlatformFees     decimal.Decimal `db:"platform_fees"`
}

const (
	WithdrawalStatusPending  string = "pending"
	WithdrawalStatusApproved string = "approved"
	WithdrawalStatusRejected string = "rejected"
)

type WithdrawalRequest struct {
	ID          string          `db:"id"`
	OwnerID     int             `db:"owner_id"`
	Amount      decimal.Decimal `db:"amount"`
	Destination string          `db:"destination"`
	Status      string          `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
	ReviewedAt  *time.Time      `db:"reviewed_at"`
}
