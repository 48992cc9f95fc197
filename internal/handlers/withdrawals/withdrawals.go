package withdrawals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/cookledger/internal/domain"
	"github.com/GlebRadaev/cookledger/internal/dto"
	withdrawalservice "github.com/GlebRadaev/cookledger/internal/service/withdrawalservice"
	"github.com/GlebRadaev/cookledger/pkg/auth"
	"github.com/GlebRadaev/cookledger/pkg/utils"
)

type Service interface {
	Request(ctx context.Context, ownerID int, amount decimal.Decimal, destination string) (*domain.WithdrawalRequest, error)
	Review(ctx context.Context, requestID string, approve bool) (*domain.WithdrawalRequest, error)
	GetRequests(ctx context.Context, ownerID int) ([]domain.WithdrawalRequest, error)
	GetPending(ctx context.Context) ([]domain.WithdrawalRequest, error)
}

type WithdrawalHandler struct {
	withdrawalService Service
}

func New(withdrawalService Service) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// RequestWithdrawal godoc
//
//	@Summary		Request funds withdrawal
//	@Description	File a withdrawal request for the authenticated cook; it is debited only after admin approval.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawalRequestDTO	true	"Withdrawal request payload"
//	@Success		200		{object}	dto.WithdrawalResponseDTO	"Created request"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		402		{object}	utils.Response				"Insufficient balance"
//	@Failure		422		{object}	utils.Response				"Invalid amount or destination"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/cook/withdrawals [post]
func (h *WithdrawalHandler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := r.Context().Value(auth.UserIDKey).(int)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.WithdrawalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.withdrawalService.Request(r.Context(), ownerID, req.Amount, req.Destination)
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, withdrawalservice.ErrInvalidAmount),
			errors.Is(err, withdrawalservice.ErrInvalidDestination):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponseDTO(*request))
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawal requests
//	@Description	Withdrawal request history for the authenticated cook, newest first.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO	"Withdrawal requests"
//	@Success		204	{object}	utils.Response				"No withdrawal requests"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/cook/withdrawals [get]
func (h *WithdrawalHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := r.Context().Value(auth.UserIDKey).(int)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	requests, err := h.withdrawalService.GetRequests(r.Context(), ownerID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawal requests")
		return
	}
	if len(requests) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Withdrawal requests not found")
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(requests))
	for i, request := range requests {
		response[i] = toResponseDTO(request)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetPending godoc
//
//	@Summary		Get pending withdrawal requests
//	@Description	All withdrawal requests awaiting review, oldest first.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO	"Pending requests"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		403	{object}	utils.Response				"Admin role required"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/withdrawals [get]
func (h *WithdrawalHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.withdrawalService.GetPending(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch pending requests")
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(requests))
	for i, request := range requests {
		response[i] = toResponseDTO(request)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Review godoc
//
//	@Summary		Review a withdrawal request
//	@Description	Approve or reject a pending request; approval debits the cook's ledger.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Request id"
//	@Param			request	body		dto.WithdrawalReviewRequestDTO	true	"Review decision"
//	@Success		200		{object}	dto.WithdrawalResponseDTO		"Reviewed request"
//	@Failure		402		{object}	utils.Response					"Insufficient balance"
//	@Failure		404		{object}	utils.Response					"Request not found"
//	@Failure		409		{object}	utils.Response					"Request already reviewed"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/admin/withdrawals/{id}/review [post]
func (h *WithdrawalHandler) Review(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")

	var req dto.WithdrawalReviewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.withdrawalService.Review(r.Context(), requestID, req.Approve)
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrRequestNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, withdrawalservice.ErrAlreadyReviewed):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, withdrawalservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponseDTO(*request))
}

func toResponseDTO(request domain.WithdrawalRequest) dto.WithdrawalResponseDTO {
	return dto.WithdrawalResponseDTO{
		ID:          request.ID,
		Amount:      request.Amount,
		Destination: request.Destination,
		Status:      request.Status,
		CreatedAt:   request.CreatedAt,
		ReviewedAt:  request.ReviewedAt,
	}
}
