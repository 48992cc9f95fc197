package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/cookledger/internal/domain"
	"github.com/GlebRadaev/cookledger/internal/dto"
	"github.com/GlebRadaev/cookledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/cookledger/pkg/utils"
)

type Service interface {
	ApplyTransaction(ctx context.Context, ownerID int, req ledgerservice.ApplyRequest) (*domain.Transaction, decimal.Decimal, error)
}

type PaymentHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *PaymentHandler {
	return &PaymentHandler{
		ledgerService: ledgerService,
	}
}

// Webhook godoc
//
//	@Summary		Payment-succeeded webhook
//	@Description	HTTP fallback for the payment provider: credits the cook's ledger with the 90/10 split. Replays of the same reference are acknowledged without double-crediting.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PaymentEventDTO					true	"Payment event"
//	@Success		200		{object}	dto.ApplyTransactionResponseDTO		"Applied credit"
//	@Failure		400		{object}	utils.Response						"Invalid request body"
//	@Failure		422		{object}	utils.Response						"Invalid amount"
//	@Failure		500		{object}	utils.Response						"Internal server error"
//	@Router			/api/payments/webhook [post]
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var event dto.PaymentEventDTO
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if event.OwnerID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "owner_id is required")
		return
	}

	description := event.Description
	if description == "" {
		description = "payment for " + event.Reference
	}

	transaction, balance, err := h.ledgerService.ApplyTransaction(r.Context(), event.OwnerID, ledgerservice.ApplyRequest{
		Kind:        domain.TransactionKindCredit,
		GrossAmount: event.TotalAmount,
		Description: description,
		Reference:   event.Reference,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledgerservice.ErrDuplicateReference):
			// replayed delivery, already credited
			utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "already applied"})
		case errors.Is(err, ledgerservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.ApplyTransactionResponseDTO{
		Transaction: dto.TransactionResponseDTO{
			ID:            transaction.ID,
			Kind:          transaction.Kind,
			GrossAmount:   transaction.GrossAmount,
			CookShare:     transaction.CookShare,
			PlatformShare: transaction.PlatformShare,
			Description:   transaction.Description,
			Reference:     transaction.Reference,
			Status:        transaction.Status,
			CreatedAt:     transaction.CreatedAt,
		},
		Balance: balance,
	})
}
