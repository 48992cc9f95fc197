package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/cookledger/docs"
	"github.com/GlebRadaev/cookledger/internal/domain"
	authhandlers "github.com/GlebRadaev/cookledger/internal/handlers/auth"
	ledgerhandlers "github.com/GlebRadaev/cookledger/internal/handlers/ledger"
	paymenthandlers "github.com/GlebRadaev/cookledger/internal/handlers/payments"
	withdrawalhandlers "github.com/GlebRadaev/cookledger/internal/handlers/withdrawals"
	"github.com/GlebRadaev/cookledger/internal/service"
	"github.com/GlebRadaev/cookledger/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type LedgerHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
}

type WithdrawalHandler interface {
	RequestWithdrawal(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
	GetPending(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Webhook(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler       AuthHandler
	LedgerHandler     LedgerHandler
	WithdrawalHandler WithdrawalHandler
	PaymentHandler    PaymentHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:       authhandlers.New(s.AuthService),
		LedgerHandler:     ledgerhandlers.New(s.LedgerService),
		WithdrawalHandler: withdrawalhandlers.New(s.WithdrawalService),
		PaymentHandler:    paymenthandlers.New(s.PaymentService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)
		})

		r.Post("/payments/webhook", h.PaymentHandler.Webhook)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			r.Route("/cook", func(r chi.Router) {
				r.Route("/ledger", func(r chi.Router) {
					r.Get("/", h.LedgerHandler.GetBalance)
					r.Get("/transactions", h.LedgerHandler.GetTransactions)
					r.Get("/summary", h.LedgerHandler.GetSummary)
				})
				r.Route("/withdrawals", func(r chi.Router) {
					r.Post("/", h.WithdrawalHandler.RequestWithdrawal)
					r.Get("/", h.WithdrawalHandler.GetWithdrawals)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.RequireRole(domain.RoleAdmin))
				r.Route("/ledgers/{ownerID}", func(r chi.Router) {
					r.Get("/", h.LedgerHandler.GetBalance)
					r.Get("/transactions", h.LedgerHandler.GetTransactions)
					r.Get("/summary", h.LedgerHandler.GetSummary)
				})
				r.Route("/withdrawals", func(r chi.Router) {
					r.Get("/", h.WithdrawalHandler.GetPending)
					r.Post("/{id}/review", h.WithdrawalHandler.Review)
				})
			})
		})
	})

	return r
}
