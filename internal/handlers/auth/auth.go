package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/cookledger/internal/domain"
	"github.com/GlebRadaev/cookledger/internal/dto"
	authservice "github.com/GlebRadaev/cookledger/internal/service/authservice"
	"github.com/GlebRadaev/cookledger/pkg/utils"
)

type Service interface {
	Register(ctx context.Context, login, password, role string) (*domain.User, error)
	Authenticate(ctx context.Context, login, password string) (*domain.User, error)
	GenerateToken(userID int, role string) (string, error)
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Create a cook (or admin) account and return a bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"Registration payload"
//	@Success		200		{object}	dto.AuthResponseDTO		"Bearer token"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		409		{object}	utils.Response			"Login already taken"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Login == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "login and password are required")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Login, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrLoginTaken):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, authservice.ErrUnknownRole):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, authservice.ErrWeakPassword):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{Token: token})
}

// Login godoc
//
//	@Summary		Authenticate a user
//	@Description	Verify credentials and return a bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login payload"
//	@Success		200		{object}	dto.AuthResponseDTO	"Bearer token"
//	@Failure		400		{object}	utils.Response		"Invalid request body"
//	@Failure		401		{object}	utils.Response		"Invalid credentials"
//	@Failure		500		{object}	utils.Response		"Internal server error"
//	@Router			/api/user/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{Token: token})
}
