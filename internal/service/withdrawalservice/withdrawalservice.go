package withdrawalservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/cookledger/internal/domain"
	"github.com/GlebRadaev/cookledger/internal/pg"
	"github.com/GlebRadaev/cookledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/cookledger/pkg/validate"
)

//go:generate mockgen -source=withdrawalservice.go -destination=withdrawalservice_mock.go -package=withdrawalservice

type Repo interface {
	Create(ctx context.Context, request *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error)
	FindByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error)
	ListByOwnerID(ctx context.Context, ownerID int) ([]domain.WithdrawalRequest, error)
	ListByStatus(ctx context.Context, status string) ([]domain.WithdrawalRequest, error)
	MarkReviewed(ctx context.Context, id, status string, reviewedAt time.Time) (bool, error)
}

type LedgerService interface {
	GetOrCreate(ctx context.Context, ownerID int) (*domain.Ledger, error)
	ApplyTransaction(ctx context.Context, ownerID int, req ledgerservice.ApplyRequest) (*domain.Transaction, decimal.Decimal, error)
}

var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidDestination  = errors.New("invalid destination card number")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRequestNotFound     = errors.New("withdrawal request not found")
	ErrAlreadyReviewed     = errors.New("withdrawal request already reviewed")
)

type Service struct {
	withdrawalRepo Repo
	ledgerService  LedgerService
	txManager      pg.TXManager
}

func New(withdrawalRepo Repo, ledgerService LedgerService, txManager pg.TXManager) *Service {
	return &Service{
		withdrawalRepo: withdrawalRepo,
		ledgerService:  ledgerService,
		txManager:      txManager,
	}
}

// Request files a withdrawal request for admin review. The balance is checked
// up front for early feedback; the authoritative check happens when the
// approved debit is applied.
func (s *Service) Request(ctx context.Context, ownerID int, amount decimal.Decimal, destination string) (*domain.WithdrawalRequest, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !validate.IsCardNumber(destination) {
		return nil, ErrInvalidDestination
	}

	ledger, err := s.ledgerService.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if ledger.CurrentBalance.LessThan(amount) {
		return nil, ErrInsufficientBalance
	}

	request := &domain.WithdrawalRequest{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Amount:      amount,
		Destination: destination,
		Status:      domain.WithdrawalStatusPending,
		CreatedAt:   time.Now(),
	}
	if _, err := s.withdrawalRepo.Create(ctx, request); err != nil {
		zap.L().Error("failed to create withdrawal request", zap.Error(err))
		return nil, err
	}

	zap.L().Info("withdrawal requested",
		zap.String("requestID", request.ID),
		zap.Int("ownerID", ownerID),
		zap.String("amount", amount.String()),
	)
	return request, nil
}

// Review settles a pending request. Inside one database transaction the
// pending row is claimed first with a status-guarded update, so concurrent
// reviews of the same request settle it exactly once; approval then debits the
// owner's ledger in the same unit. A failed debit rolls the claim back and
// leaves the request pending.
func (s *Service) Review(ctx context.Context, requestID string, approve bool) (*domain.WithdrawalRequest, error) {
	request, err := s.withdrawalRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if request.Status != domain.WithdrawalStatusPending {
		return nil, ErrAlreadyReviewed
	}

	status := domain.WithdrawalStatusRejected
	if approve {
		status = domain.WithdrawalStatusApproved
	}
	reviewedAt := time.Now()

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		claimed, err := s.withdrawalRepo.MarkReviewed(ctx, request.ID, status, reviewedAt)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrAlreadyReviewed
		}
		if approve {
			_, _, err := s.ledgerService.ApplyTransaction(ctx, request.OwnerID, ledgerservice.ApplyRequest{
				Kind:        domain.TransactionKindDebit,
				GrossAmount: request.Amount,
				Description: fmt.Sprintf("withdrawal to card %s", validate.MaskCardNumber(request.Destination)),
				Reference:   request.ID,
			})
			if err != nil {
				if errors.Is(err, ledgerservice.ErrInsufficientBalance) {
					return ErrInsufficientBalance
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientBalance) && !errors.Is(err, ErrAlreadyReviewed) {
			zap.L().Error("failed to review withdrawal request", zap.String("requestID", requestID), zap.Error(err))
		}
		return nil, err
	}

	request.Status = status
	request.ReviewedAt = &reviewedAt
	zap.L().Info("withdrawal request reviewed", zap.String("requestID", requestID), zap.String("status", status))
	return request, nil
}

func (s *Service) GetRequests(ctx context.Context, ownerID int) ([]domain.WithdrawalRequest, error) {
	requests, err := s.withdrawalRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawal requests", zap.Error(err))
		return nil, err
	}
	return requests, nil
}

func (s *Service) GetPending(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	requests, err := s.withdrawalRepo.ListByStatus(ctx, domain.WithdrawalStatusPending)
	if err != nil {
		zap.L().Error("failed to fetch pending withdrawal requests", zap.Error(err))
		return nil, err
	}
	return requests, nil
}
