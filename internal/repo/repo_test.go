package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/cookledger/internal/pg"
	ledgerrepo "github.com/GlebRadaev/cookledger/internal/repo/ledger-repo"
	transactionrepo "github.com/GlebRadaev/cookledger/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/cookledger/internal/repo/user-repo"
	withdrawalrepo "github.com/GlebRadaev/cookledger/internal/repo/withdrawal-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	mockTxManager := pg.NewMockTXManager(ctrl)
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.UserRepo)
	assert.NotNil(t, repo.LedgerRepo)
	assert.NotNil(t, repo.TransactionRepo)
	assert.NotNil(t, repo.WithdrawalRepo)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &ledgerrepo.Repository{}, repo.LedgerRepo)
	assert.IsType(t, &transactionrepo.Repository{}, repo.TransactionRepo)
	assert.IsType(t, &withdrawalrepo.Repository{}, repo.WithdrawalRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
