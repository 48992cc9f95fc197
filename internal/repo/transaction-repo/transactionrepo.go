package transactionrepo

import (
	"context"

	"github.com/GlebRadaev/cookledger/internal/domain"
	"github.com/GlebRadaev/cookledger/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Append(ctx context.Context, transaction *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, ledger_id, kind, gross_amount, cook_share, platform_share, description, reference, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		transaction.ID, transaction.LedgerID, transaction.Kind,
		transaction.GrossAmount, transaction.CookShare, transaction.PlatformShare,
		transaction.Description, transaction.Reference, transaction.Status, transaction.CreatedAt)
	if err != nil {
		zap.L().Error("can't append transaction", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListByLedgerID(ctx context.Context, ledgerID, limit, offset int) ([]domain.Transaction, error) {
	query := `
        SELECT id, ledger_id, kind, gross_amount, cook_share, platform_share, description, reference, status, created_at
        FROM transactions
        WHERE ledger_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.db.Query(ctx, query, ledgerID, limit, offset)
	if err != nil {
		zap.L().Error("can't get transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		err := rows.Scan(
			&transaction.ID, &transaction.LedgerID, &transaction.Kind,
			&transaction.GrossAmount, &transaction.CookShare, &transaction.PlatformShare,
			&transaction.Description, &transaction.Reference, &transaction.Status, &transaction.CreatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}

func (r *Repository) CountByLedgerID(ctx context.Context, ledgerID int) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM transactions
        WHERE ledger_id = $1
    `
	var count int
	if err := r.db.QueryRow(ctx, query, ledgerID).Scan(&count); err != nil {
		zap.L().Error("can't count transactions", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// Summarize folds over the full history in the database; the result must match
// the counters maintained on the ledger row.
func (r *Repository) Summarize(ctx context.Context, ledgerID int) (*domain.TransactionSummary, error) {
	query := `
        SELECT
            COALESCE(SUM(cook_share) FILTER (WHERE kind = 'credit'), 0) AS total_credits,
            COALESCE(SUM(gross_amount) FILTER (WHERE kind = 'debit'), 0) AS total_debits,
            COUNT(*) AS transaction_count,
            COALESCE(SUM(platform_share) FILTER (WHERE kind = 'credit'), 0) AS platform_fees
        FROM transactions
        WHERE ledger_id = $1
    `
	var summary domain.TransactionSummary
	err := r.db.QueryRow(ctx, query, ledgerID).Scan(
		&summary.TotalCredits, &summary.TotalDebits, &summary.TransactionCount, &summary.PlatformFees,
	)
	if err != nil {
		zap.L().Error("can't summarize transactions", zap.Error(err))
		return nil, err
	}
	return &summary, nil
}

func (r *Repository) ExistsByReference(ctx context.Context, ledgerID int, reference string) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM transactions
            WHERE ledger_id = $1 AND reference = $2 AND kind = 'credit'
        )
    `
	var exists bool
	if err := r.db.QueryRow(ctx, query, ledgerID, reference).Scan(&exists); err != nil {
		zap.L().Error("can't check transaction reference", zap.Error(err))
		return false, err
	}
	return exists, nil
}
