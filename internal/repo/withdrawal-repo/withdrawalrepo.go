package withdrawalrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

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

func (r *Repository) Create(ctx context.Context, request *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error) {
	query := `
		INSERT INTO withdrawal_requests (id, owner_id, amount, destination, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		request.ID, request.OwnerID, request.Amount, request.Destination, request.Status, request.CreatedAt)
	if err != nil {
		zap.L().Error("can't save withdrawal request", zap.Error(err))
		return nil, err
	}
	return request, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error) {
	query := `
        SELECT id, owner_id, amount, destination, status, created_at, reviewed_at
        FROM withdrawal_requests
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var request domain.WithdrawalRequest
	err := row.Scan(&request.ID, &request.OwnerID, &request.Amount, &request.Destination,
		&request.Status, &request.CreatedAt, &request.ReviewedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find withdrawal request", zap.Error(err))
		return nil, err
	}
	return &request, nil
}

func (r *Repository) ListByOwnerID(ctx context.Context, ownerID int) ([]domain.WithdrawalRequest, error) {
	query := `
        SELECT id, owner_id, amount, destination, status, created_at, reviewed_at
        FROM withdrawal_requests
        WHERE owner_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawal requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *Repository) ListByStatus(ctx context.Context, status string) ([]domain.WithdrawalRequest, error) {
	query := `
        SELECT id, owner_id, amount, destination, status, created_at, reviewed_at
        FROM withdrawal_requests
        WHERE status = $1
        ORDER BY created_at ASC
    `
	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		zap.L().Error("failed to fetch withdrawal requests by status", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

// MarkReviewed flips a pending request to its reviewed status. The status
// predicate makes the claim exclusive: of two concurrent reviews only one
// matches the row, the other gets false.
func (r *Repository) MarkReviewed(ctx context.Context, id, status string, reviewedAt time.Time) (bool, error) {
	query := `
		UPDATE withdrawal_requests
		SET status = $1, reviewed_at = $2
		WHERE id = $3 AND status = $4
	`
	tag, err := r.db.Exec(ctx, query, status, reviewedAt, id, domain.WithdrawalStatusPending)
	if err != nil {
		zap.L().Error("failed to mark withdrawal request reviewed", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanRequests(rows pgx.Rows) ([]domain.WithdrawalRequest, error) {
	var requests []domain.WithdrawalRequest
	for rows.Next() {
		var request domain.WithdrawalRequest
		err := rows.Scan(&request.ID, &request.OwnerID, &request.Amount, &request.Destination,
			&request.Status, &request.CreatedAt, &request.ReviewedAt)
		if err != nil {
			zap.L().Error("can't scan withdrawal request row", zap.Error(err))
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}
