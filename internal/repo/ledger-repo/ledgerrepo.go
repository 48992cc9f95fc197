package ledgerrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/GlebRadaev/cookledger/internal/domain"
	"github.com/GlebRadaev/cookledger/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) GetByOwnerID(ctx context.Context, ownerID int) (*domain.Ledger, error) {
	query := `
        SELECT id, owner_id, current_balance, total_earned, total_withdrawn, platform_fees, last_updated
        FROM ledgers
        WHERE owner_id = $1
    `
	return r.scanLedger(r.db.QueryRow(ctx, query, ownerID))
}

// GetByOwnerIDForUpdate locks the ledger row for the duration of the enclosing
// transaction, so concurrent applies on the same owner queue on the row lock.
func (r *Repository) GetByOwnerIDForUpdate(ctx context.Context, ownerID int) (*domain.Ledger, error) {
	query := `
        SELECT id, owner_id, current_balance, total_earned, total_withdrawn, platform_fees, last_updated
        FROM ledgers
        WHERE owner_id = $1
        FOR UPDATE
    `
	return r.scanLedger(r.db.QueryRow(ctx, query, ownerID))
}

func (r *Repository) Create(ctx context.Context, ownerID int) (*domain.Ledger, error) {
	query := `
        INSERT INTO ledgers (owner_id)
        VALUES ($1)
        ON CONFLICT (owner_id) DO NOTHING
        RETURNING id, owner_id, current_balance, total_earned, total_withdrawn, platform_fees, last_updated
    `
	ledger, err := r.scanLedger(r.db.QueryRow(ctx, query, ownerID))
	if err != nil {
		return nil, err
	}
	if ledger != nil {
		return ledger, nil
	}
	// lost the insert race, the winner's row is the ledger
	return r.GetByOwnerID(ctx, ownerID)
}

func (r *Repository) Update(ctx context.Context, ledger *domain.Ledger) error {
	query := `
		UPDATE ledgers
		SET current_balance = $1, total_earned = $2, total_withdrawn = $3, platform_fees = $4, last_updated = $5
		WHERE id = $6
	`
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			ledger.CurrentBalance, ledger.TotalEarned, ledger.TotalWithdrawn, ledger.PlatformFees, ledger.LastUpdated, ledger.ID)
		if err != nil {
			zap.L().Error("failed to update ledger", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) scanLedger(row pgx.Row) (*domain.Ledger, error) {
	var ledger domain.Ledger
	err := row.Scan(
		&ledger.ID, &ledger.OwnerID, &ledger.CurrentBalance,
		&ledger.TotalEarned, &ledger.TotalWithdrawn, &ledger.PlatformFees, &ledger.LastUpdated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to scan ledger row", zap.Error(err))
		return nil, err
	}
	return &ledger, nil
}
