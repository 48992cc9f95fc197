package ledger

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/cookledger/internal/domain"
	"github.com/GlebRadaev/cookledger/internal/dto"
	"github.com/GlebRadaev/cookledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/cookledger/pkg/auth"
	"github.com/GlebRadaev/cookledger/pkg/utils"
)

type Service interface {
	GetOrCreate(ctx context.Context, ownerID int) (*domain.Ledger, error)
	ListTransactions(ctx context.Context, ownerID, page, limit int) (*ledgerservice.TransactionList, error)
	Summarize(ctx context.Context, ownerID int) (*domain.TransactionSummary, error)
}

type LedgerHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// GetBalance godoc
//
//	@Summary		Get ledger balance
//	@Description	Current balance and running totals for a cook's ledger; the ledger is created lazily on first access.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance and totals"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/cook/ledger [get]
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := resolveOwnerID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid owner id")
		return
	}

	ledger, err := h.ledgerService.GetOrCreate(r.Context(), ownerID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Current:        ledger.CurrentBalance,
		TotalEarned:    ledger.TotalEarned,
		TotalWithdrawn: ledger.TotalWithdrawn,
		PlatformFees:   ledger.PlatformFees,
		LastUpdated:    ledger.LastUpdated,
	})
}

// GetTransactions godoc
//
//	@Summary		Get transaction history
//	@Description	One page of the ledger's transaction history, newest first.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page	query		int	false	"Page number"	default(1)
//	@Param			limit	query		int	false	"Page size"		default(10)
//	@Success		200		{object}	dto.TransactionListResponseDTO	"Transaction page"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/cook/ledger/transactions [get]
func (h *LedgerHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := resolveOwnerID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid owner id")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.ledgerService.ListTransactions(r.Context(), ownerID, page, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	transactions := make([]dto.TransactionResponseDTO, len(list.Transactions))
	for i, transaction := range list.Transactions {
		transactions[i] = dto.TransactionResponseDTO{
			ID:            transaction.ID,
			Kind:          transaction.Kind,
			GrossAmount:   transaction.GrossAmount,
			CookShare:     transaction.CookShare,
			PlatformShare: transaction.PlatformShare,
			Description:   transaction.Description,
			Reference:     transaction.Reference,
			Status:        transaction.Status,
			CreatedAt:     transaction.CreatedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.TransactionListResponseDTO{
		Transactions: transactions,
		Pagination: dto.PaginationDTO{
			Page:       list.Pagination.Page,
			Limit:      list.Pagination.Limit,
			Total:      list.Pagination.Total,
			TotalPages: list.Pagination.TotalPages,
			HasNext:    list.Pagination.HasNext,
			HasPrev:    list.Pagination.HasPrev,
		},
	})
}

// GetSummary godoc
//
//	@Summary		Get ledger summary
//	@Description	Aggregates recomputed from the full transaction history.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.SummaryResponseDTO	"History aggregates"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/cook/ledger/summary [get]
func (h *LedgerHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := resolveOwnerID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid owner id")
		return
	}

	summary, err := h.ledgerService.Summarize(r.Context(), ownerID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to summarize ledger")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SummaryResponseDTO{
		TotalCredits:     summary.TotalCredits,
		TotalDebits:      summary.TotalDebits,
		TransactionCount: summary.TransactionCount,
		PlatformFees:     summary.PlatformFees,
	})
}

// resolveOwnerID takes the owner from the admin route parameter when present,
// otherwise from the authenticated caller.
func resolveOwnerID(r *http.Request) (int, bool) {
	if param := chi.URLParam(r, "ownerID"); param != "" {
		id, err := strconv.Atoi(param)
		return id, err == nil && id > 0
	}
	id, ok := r.Context().Value(auth.UserIDKey).(int)
	return id, ok
}
