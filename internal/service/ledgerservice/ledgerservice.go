package ledgerservice

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/GlebRadaev/cookledger/internal/domain"
	"github.com/GlebRadaev/cookledger/internal/pg"
)

//go:generate mockgen -source=ledgerservice.go -destination=ledgerservice_mock.go -package=ledgerservice

type LedgerRepo interface {
	GetByOwnerID(ctx context.Context, ownerID int) (*domain.Ledger, error)
	GetByOwnerIDForUpdate(ctx context.Context, ownerID int) (*domain.Ledger, error)
	Create(ctx context.Context, ownerID int) (*domain.Ledger, error)
	Update(ctx context.Context, ledger *domain.Ledger) error
}

type TransactionRepo interface {
	Append(ctx context.Context, transaction *domain.Transaction) error
	ListByLedgerID(ctx context.Context, ledgerID, limit, offset int) ([]domain.Transaction, error)
	CountByLedgerID(ctx context.Context, ledgerID int) (int, error)
	Summarize(ctx context.Context, ledgerID int) (*domain.TransactionSummary, error)
	ExistsByReference(ctx context.Context, ledgerID int, reference string) (bool, error)
}

var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidKind         = errors.New("unknown transaction kind")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDuplicateReference  = errors.New("credit reference already applied")
)

// Every credited gross amount is split 90/10 between the cook and the
// platform. Shares are rounded to two decimal places independently, so their
// sum may drift from the gross by one rounding unit; the drift is accepted.
var (
	cookShareRate     = decimal.RequireFromString("0.90")
	platformShareRate = decimal.RequireFromString("0.10")
)

const defaultPageLimit = 10

type ApplyRequest struct {
	Kind        string
	GrossAmount decimal.Decimal
	Description string
	Reference   string
}

type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

type TransactionList struct {
	Transactions []domain.Transaction
	Pagination   Pagination
}

type Service struct {
	ledgerRepo      LedgerRepo
	transactionRepo TransactionRepo
	txManager       pg.TXManager

	ownerLocks  map[int]*sync.Mutex
	locksMu     sync.Mutex
	createGroup singleflight.Group
}

func New(ledgerRepo LedgerRepo, transactionRepo TransactionRepo, txManager pg.TXManager) *Service {
	return &Service{
		ledgerRepo:      ledgerRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		ownerLocks:      make(map[int]*sync.Mutex),
	}
}

// GetOrCreate returns the ledger for ownerID, lazily creating an empty one on
// first access. Concurrent lookups for the same owner collapse into one
// database round-trip; the owner_id uniqueness constraint makes concurrent
// creation collapse to a single row.
func (s *Service) GetOrCreate(ctx context.Context, ownerID int) (*domain.Ledger, error) {
	v, err, _ := s.createGroup.Do(strconv.Itoa(ownerID), func() (any, error) {
		ledger, err := s.ledgerRepo.GetByOwnerID(ctx, ownerID)
		if err != nil {
			zap.L().Error("failed to get ledger", zap.Error(err))
			return nil, err
		}
		if ledger != nil {
			return ledger, nil
		}

		ledger, err = s.ledgerRepo.Create(ctx, ownerID)
		if err != nil {
			zap.L().Error("failed to create ledger", zap.Error(err))
			return nil, err
		}
		return ledger, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Ledger), nil
}

// ApplyTransaction applies a credit or debit to the owner's ledger as one
// atomic unit: counters, balance and the history append commit together or not
// at all. Applies on the same owner are serialized by a per-owner lock and the
// row lock taken inside the transaction.
func (s *Service) ApplyTransaction(ctx context.Context, ownerID int, req ApplyRequest) (*domain.Transaction, decimal.Decimal, error) {
	if !req.GrossAmount.IsPositive() {
		return nil, decimal.Zero, ErrInvalidAmount
	}
	if req.Kind != domain.TransactionKindCredit && req.Kind != domain.TransactionKindDebit {
		return nil, decimal.Zero, ErrInvalidKind
	}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	var transaction *domain.Transaction
	var newBalance decimal.Decimal

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		ledger, err := s.ledgerRepo.GetByOwnerIDForUpdate(ctx, ownerID)
		if err != nil {
			return err
		}
		if ledger == nil {
			if _, err = s.ledgerRepo.Create(ctx, ownerID); err != nil {
				return err
			}
			// Create may have lost the insert race to another process, so the
			// row lock has to be taken explicitly either way.
			if ledger, err = s.ledgerRepo.GetByOwnerIDForUpdate(ctx, ownerID); err != nil {
				return err
			}
		}

		now := time.Now()
		transaction = &domain.Transaction{
			ID:          uuid.NewString(),
			LedgerID:    ledger.ID,
			Kind:        req.Kind,
			GrossAmount: req.GrossAmount,
			Description: req.Description,
			Reference:   req.Reference,
			Status:      domain.TransactionStatusCompleted,
			CreatedAt:   now,
		}

		switch req.Kind {
		case domain.TransactionKindCredit:
			if req.Reference != "" {
				exists, err := s.transactionRepo.ExistsByReference(ctx, ledger.ID, req.Reference)
				if err != nil {
					return err
				}
				if exists {
					return ErrDuplicateReference
				}
			}
			transaction.CookShare = req.GrossAmount.Mul(cookShareRate).Round(2)
			transaction.PlatformShare = req.GrossAmount.Mul(platformShareRate).Round(2)

			ledger.CurrentBalance = ledger.CurrentBalance.Add(transaction.CookShare)
			ledger.TotalEarned = ledger.TotalEarned.Add(transaction.CookShare)
			ledger.PlatformFees = ledger.PlatformFees.Add(transaction.PlatformShare)

		case domain.TransactionKindDebit:
			if ledger.CurrentBalance.LessThan(req.GrossAmount) {
				return ErrInsufficientBalance
			}
			ledger.CurrentBalance = ledger.CurrentBalance.Sub(req.GrossAmount)
			ledger.TotalWithdrawn = ledger.TotalWithdrawn.Add(req.GrossAmount)
		}

		ledger.LastUpdated = now
		if err := s.transactionRepo.Append(ctx, transaction); err != nil {
			return err
		}
		if err := s.ledgerRepo.Update(ctx, ledger); err != nil {
			return err
		}
		newBalance = ledger.CurrentBalance
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientBalance) && !errors.Is(err, ErrDuplicateReference) {
			zap.L().Error("failed to apply transaction", zap.Int("ownerID", ownerID), zap.Error(err))
		}
		return nil, decimal.Zero, err
	}

	zap.L().Info("transaction applied",
		zap.Int("ownerID", ownerID),
		zap.String("kind", transaction.Kind),
		zap.String("gross", transaction.GrossAmount.String()),
	)
	return transaction, newBalance, nil
}

// ListTransactions returns one page of the owner's history, newest first. A
// page past the end of the history is empty, not an error.
func (s *Service) ListTransactions(ctx context.Context, ownerID, page, limit int) (*TransactionList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}

	ledger, err := s.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	total, err := s.transactionRepo.CountByLedgerID(ctx, ledger.ID)
	if err != nil {
		return nil, err
	}

	transactions := []domain.Transaction{}
	offset := (page - 1) * limit
	if offset < total {
		transactions, err = s.transactionRepo.ListByLedgerID(ctx, ledger.ID, limit, offset)
		if err != nil {
			return nil, err
		}
	}

	totalPages := (total + limit - 1) / limit
	return &TransactionList{
		Transactions: transactions,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}

// Summarize recomputes the aggregate counters from the full history. Callers
// use it as a consistency check against the ledger's running totals.
func (s *Service) Summarize(ctx context.Context, ownerID int) (*domain.TransactionSummary, error) {
	ledger, err := s.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary, err := s.transactionRepo.Summarize(ctx, ledger.ID)
	if err != nil {
		zap.L().Error("failed to summarize transactions", zap.Error(err))
		return nil, err
	}
	return summary, nil
}

func (s *Service) ownerLock(ownerID int) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.ownerLocks[ownerID]
	if !ok {
		lock = &sync.Mutex{}
		s.ownerLocks[ownerID] = lock
	}
	return lock
}
