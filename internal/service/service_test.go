package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/cookledger/internal/pg"
	"github.com/GlebRadaev/cookledger/internal/repo"
	authservice "github.com/GlebRadaev/cookledger/internal/service/authservice"
	ledgerservice "github.com/GlebRadaev/cookledger/internal/service/ledgerservice"
	withdrawalservice "github.com/GlebRadaev/cookledger/internal/service/withdrawalservice"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := authservice.NewMockRepo(ctrl)
	mockLedgerRepo := ledgerservice.NewMockLedgerRepo(ctrl)
	mockTransactionRepo := ledgerservice.NewMockTransactionRepo(ctrl)
	mockWithdrawalRepo := withdrawalservice.NewMockRepo(ctrl)
	mockTxManager := pg.NewMockTXManager(ctrl)

	repos := &repo.Repositories{
		UserRepo:        mockUserRepo,
		LedgerRepo:      mockLedgerRepo,
		TransactionRepo: mockTransactionRepo,
		WithdrawalRepo:  mockWithdrawalRepo,
	}

	services := New(repos, mockTxManager)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.LedgerService)
	assert.NotNil(t, services.PaymentService)
	assert.NotNil(t, services.WithdrawalService)
}
