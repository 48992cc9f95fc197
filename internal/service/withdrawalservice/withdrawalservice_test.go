package withdrawalservice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/cookledger/internal/domain"
	"github.com/GlebRadaev/cookledger/internal/pg"
	"github.com/GlebRadaev/cookledger/internal/service/ledgerservice"
)

const validCard = "4561261212345467"

func NewMock(t *testing.T) (*Service, *MockRepo, *MockLedgerService, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	withdrawalRepo := NewMockRepo(ctrl)
	ledgerService := NewMockLedgerService(ctrl)
	txManager := pg.NewMockTXManager(ctrl)

	service := New(withdrawalRepo, ledgerService, txManager)
	defer ctrl.Finish()
	return service, withdrawalRepo, ledgerService, txManager
}

func passthroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().
		Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()
}

func TestRequest(t *testing.T) {
	tests := []struct {
		name          string
		amount        decimal.Decimal
		destination   string
		prepareMock   func(withdrawalRepo *MockRepo, ledgerService *MockLedgerService)
		expectedError error
	}{
		{
			name:        "Successful request",
			amount:      decimal.RequireFromString("50.00"),
			destination: validCard,
			prepareMock: func(withdrawalRepo *MockRepo, ledgerService *MockLedgerService) {
				ledgerService.EXPECT().GetOrCreate(gomock.Any(), 1).
					Return(&domain.Ledger{ID: 1, OwnerID: 1, CurrentBalance: decimal.RequireFromString("180.00")}, nil)
				withdrawalRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, request *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error) {
						return request, nil
					})
			},
		},
		{
			name:          "Non-positive amount",
			amount:        decimal.Zero,
			destination:   validCard,
			prepareMock:   func(*MockRepo, *MockLedgerService) {},
			expectedError: ErrInvalidAmount,
		},
		{
			name:          "Invalid card number",
			amount:        decimal.RequireFromString("50.00"),
			destination:   "1234567890123456",
			prepareMock:   func(*MockRepo, *MockLedgerService) {},
			expectedError: ErrInvalidDestination,
		},
		{
			name:        "Insufficient balance",
			amount:      decimal.RequireFromString("500.00"),
			destination: validCard,
			prepareMock: func(withdrawalRepo *MockRepo, ledgerService *MockLedgerService) {
				ledgerService.EXPECT().GetOrCreate(gomock.Any(), 1).
					Return(&domain.Ledger{ID: 1, OwnerID: 1, CurrentBalance: decimal.RequireFromString("130.00")}, nil)
			},
			expectedError: ErrInsufficientBalance,
		},
		{
			name:        "Repo error",
			amount:      decimal.RequireFromString("50.00"),
			destination: validCard,
			prepareMock: func(withdrawalRepo *MockRepo, ledgerService *MockLedgerService) {
				ledgerService.EXPECT().GetOrCreate(gomock.Any(), 1).
					Return(&domain.Ledger{ID: 1, OwnerID: 1, CurrentBalance: decimal.RequireFromString("180.00")}, nil)
				withdrawalRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, withdrawalRepo, ledgerService, _ := NewMock(t)
			tt.prepareMock(withdrawalRepo, ledgerService)

			request, err := service.Request(context.Background(), 1, tt.amount, tt.destination)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, request)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, request.ID)
				assert.Equal(t, domain.WithdrawalStatusPending, request.Status)
				assert.True(t, request.Amount.Equal(tt.amount))
			}
		})
	}
}

func TestReview(t *testing.T) {
	pending := func() *domain.WithdrawalRequest {
		return &domain.WithdrawalRequest{
			ID:          "req-1",
			OwnerID:     1,
			Amount:      decimal.RequireFromString("50.00"),
			Destination: validCard,
			Status:      domain.WithdrawalStatusPending,
			CreatedAt:   time.Now(),
		}
	}

	tests := []struct {
		name           string
		approve        bool
		prepareMock    func(withdrawalRepo *MockRepo, ledgerService *MockLedgerService, txManager *pg.MockTXManager)
		expectedStatus string
		expectedError  error
	}{
		{
			name:    "Approval debits the ledger and marks the request",
			approve: true,
			prepareMock: func(withdrawalRepo *MockRepo, ledgerService *MockLedgerService, txManager *pg.MockTXManager) {
				passthroughTx(txManager)
				withdrawalRepo.EXPECT().FindByID(gomock.Any(), "req-1").Return(pending(), nil)
				withdrawalRepo.EXPECT().
					MarkReviewed(gomock.Any(), "req-1", domain.WithdrawalStatusApproved, gomock.Any()).
					Return(true, nil)
				ledgerService.EXPECT().ApplyTransaction(gomock.Any(), 1, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ int, req ledgerservice.ApplyRequest) (*domain.Transaction, decimal.Decimal, error) {
						assert.Equal(t, domain.TransactionKindDebit, req.Kind)
						assert.Equal(t, "req-1", req.Reference)
						assert.True(t, req.GrossAmount.Equal(decimal.RequireFromString("50.00")))
						return &domain.Transaction{ID: "txn-1"}, decimal.RequireFromString("130.00"), nil
					})
			},
			expectedStatus: domain.WithdrawalStatusApproved,
		},
		{
			name:    "Rejection only marks the request",
			approve: false,
			prepareMock: func(withdrawalRepo *MockRepo, ledgerService *MockLedgerService, txManager *pg.MockTXManager) {
				passthroughTx(txManager)
				withdrawalRepo.EXPECT().FindByID(gomock.Any(), "req-1").Return(pending(), nil)
				withdrawalRepo.EXPECT().
					MarkReviewed(gomock.Any(), "req-1", domain.WithdrawalStatusRejected, gomock.Any()).
					Return(true, nil)
			},
			expectedStatus: domain.WithdrawalStatusRejected,
		},
		{
			name:    "Unknown request",
			approve: true,
			prepareMock: func(withdrawalRepo *MockRepo, _ *MockLedgerService, _ *pg.MockTXManager) {
				withdrawalRepo.EXPECT().FindByID(gomock.Any(), "req-1").Return(nil, nil)
			},
			expectedError: ErrRequestNotFound,
		},
		{
			name:    "Already reviewed",
			approve: true,
			prepareMock: func(withdrawalRepo *MockRepo, _ *MockLedgerService, _ *pg.MockTXManager) {
				request := pending()
				request.Status = domain.WithdrawalStatusApproved
				withdrawalRepo.EXPECT().FindByID(gomock.Any(), "req-1").Return(request, nil)
			},
			expectedError: ErrAlreadyReviewed,
		},
		{
			name:    "Balance drained before approval leaves the request pending",
			approve: true,
			prepareMock: func(withdrawalRepo *MockRepo, ledgerService *MockLedgerService, txManager *pg.MockTXManager) {
				passthroughTx(txManager)
				withdrawalRepo.EXPECT().FindByID(gomock.Any(), "req-1").Return(pending(), nil)
				withdrawalRepo.EXPECT().
					MarkReviewed(gomock.Any(), "req-1", domain.WithdrawalStatusApproved, gomock.Any()).
					Return(true, nil)
				ledgerService.EXPECT().ApplyTransaction(gomock.Any(), 1, gomock.Any()).
					Return(nil, decimal.Zero, ledgerservice.ErrInsufficientBalance)
			},
			expectedError: ErrInsufficientBalance,
		},
		{
			name:    "Claim lost to a concurrent review",
			approve: true,
			prepareMock: func(withdrawalRepo *MockRepo, ledgerService *MockLedgerService, txManager *pg.MockTXManager) {
				passthroughTx(txManager)
				withdrawalRepo.EXPECT().FindByID(gomock.Any(), "req-1").Return(pending(), nil)
				withdrawalRepo.EXPECT().
					MarkReviewed(gomock.Any(), "req-1", domain.WithdrawalStatusApproved, gomock.Any()).
					Return(false, nil)
			},
			expectedError: ErrAlreadyReviewed,
		},
		{
			name:    "Status update failure rolls everything back",
			approve: false,
			prepareMock: func(withdrawalRepo *MockRepo, ledgerService *MockLedgerService, txManager *pg.MockTXManager) {
				passthroughTx(txManager)
				withdrawalRepo.EXPECT().FindByID(gomock.Any(), "req-1").Return(pending(), nil)
				withdrawalRepo.EXPECT().
					MarkReviewed(gomock.Any(), "req-1", domain.WithdrawalStatusRejected, gomock.Any()).
					Return(false, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, withdrawalRepo, ledgerService, txManager := NewMock(t)
			tt.prepareMock(withdrawalRepo, ledgerService, txManager)

			request, err := service.Review(context.Background(), "req-1", tt.approve)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, request)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedStatus, request.Status)
				assert.NotNil(t, request.ReviewedAt)
			}
		})
	}
}

func TestReview_ConcurrentApprovalsSettleOnce(t *testing.T) {
	service, withdrawalRepo, ledgerService, txManager := NewMock(t)
	passthroughTx(txManager)

	pending := &domain.WithdrawalRequest{
		ID:          "req-1",
		OwnerID:     1,
		Amount:      decimal.RequireFromString("50.00"),
		Destination: validCard,
		Status:      domain.WithdrawalStatusPending,
		CreatedAt:   time.Now(),
	}

	var mu sync.Mutex
	claimed := false
	debits := 0

	withdrawalRepo.EXPECT().FindByID(gomock.Any(), "req-1").DoAndReturn(
		func(context.Context, string) (*domain.WithdrawalRequest, error) {
			request := *pending
			return &request, nil
		}).AnyTimes()
	withdrawalRepo.EXPECT().
		MarkReviewed(gomock.Any(), "req-1", domain.WithdrawalStatusApproved, gomock.Any()).
		DoAndReturn(func(context.Context, string, string, time.Time) (bool, error) {
			mu.Lock()
			defer mu.Unlock()
			if claimed {
				return false, nil
			}
			claimed = true
			return true, nil
		}).AnyTimes()
	ledgerService.EXPECT().ApplyTransaction(gomock.Any(), 1, gomock.Any()).DoAndReturn(
		func(context.Context, int, ledgerservice.ApplyRequest) (*domain.Transaction, decimal.Decimal, error) {
			mu.Lock()
			debits++
			mu.Unlock()
			return &domain.Transaction{ID: "txn-1"}, decimal.RequireFromString("130.00"), nil
		}).AnyTimes()

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Review(context.Background(), "req-1", true)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, debits)
	settled, lost := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			settled++
		case errors.Is(err, ErrAlreadyReviewed):
			lost++
		default:
			t.Fatalf("unexpected review error: %v", err)
		}
	}
	assert.Equal(t, 1, settled)
	assert.Equal(t, 1, lost)
}

func TestGetRequests(t *testing.T) {
	service, withdrawalRepo, _, _ := NewMock(t)

	expected := []domain.WithdrawalRequest{
		{ID: "req-2", OwnerID: 1, Status: domain.WithdrawalStatusPending},
		{ID: "req-1", OwnerID: 1, Status: domain.WithdrawalStatusApproved},
	}
	withdrawalRepo.EXPECT().ListByOwnerID(gomock.Any(), 1).Return(expected, nil)

	requests, err := service.GetRequests(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, expected, requests)
}

func TestGetPending(t *testing.T) {
	service, withdrawalRepo, _, _ := NewMock(t)

	expected := []domain.WithdrawalRequest{
		{ID: "req-1", OwnerID: 1, Status: domain.WithdrawalStatusPending},
	}
	withdrawalRepo.EXPECT().ListByStatus(gomock.Any(), domain.WithdrawalStatusPending).Return(expected, nil)

	requests, err := service.GetPending(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, requests)
}
