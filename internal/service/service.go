package service

import (
	"github.com/GlebRadaev/cookledger/internal/handlers/auth"
	"github.com/GlebRadaev/cookledger/internal/handlers/ledger"
	"github.com/GlebRadaev/cookledger/internal/handlers/payments"
	"github.com/GlebRadaev/cookledger/internal/handlers/withdrawals"

	pkgauth "github.com/GlebRadaev/cookledger/pkg/auth"

	"github.com/GlebRadaev/cookledger/internal/pg"
	"github.com/GlebRadaev/cookledger/internal/repo"
	authservice "github.com/GlebRadaev/cookledger/internal/service/authservice"
	ledgerservice "github.com/GlebRadaev/cookledger/internal/service/ledgerservice"
	withdrawalservice "github.com/GlebRadaev/cookledger/internal/service/withdrawalservice"
)

type Services struct {
	AuthService       auth.Service
	LedgerService     ledger.Service
	PaymentService    payments.Service
	WithdrawalService withdrawals.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager) *Services {
	ledgerService := ledgerservice.New(repo.LedgerRepo, repo.TransactionRepo, txManager)
	withdrawalService := withdrawalservice.New(repo.WithdrawalRepo, ledgerService, txManager)
	authService := authservice.New(repo.UserRepo, ledgerService, pkgauth.NewHashService(), &pkgauth.JWTService{})

	return &Services{
		AuthService:       authService,
		LedgerService:     ledgerService,
		PaymentService:    ledgerService,
		WithdrawalService: withdrawalService,
	}
}
