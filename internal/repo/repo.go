package repo

import (
	"github.com/GlebRadaev/cookledger/internal/pg"
	ledgerrepo "github.com/GlebRadaev/cookledger/internal/repo/ledger-repo"
	transactionrepo "github.com/GlebRadaev/cookledger/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/cookledger/internal/repo/user-repo"
	withdrawalrepo "github.com/GlebRadaev/cookledger/internal/repo/withdrawal-repo"
	"github.com/GlebRadaev/cookledger/internal/service/authservice"
	"github.com/GlebRadaev/cookledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/cookledger/internal/service/withdrawalservice"
)

type Repositories struct {
	UserRepo        authservice.Repo
	LedgerRepo      ledgerservice.LedgerRepo
	TransactionRepo ledgerservice.TransactionRepo
	WithdrawalRepo  withdrawalservice.Repo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	userRepo := userrepo.New(conn)
	ledgerRepo := ledgerrepo.New(conn, txManager)
	transactionRepo := transactionrepo.New(conn)
	withdrawalRepo := withdrawalrepo.New(conn)

	return &Repositories{
		UserRepo:        userRepo,
		LedgerRepo:      ledgerRepo,
		TransactionRepo: transactionRepo,
		WithdrawalRepo:  withdrawalRepo,
	}
}
