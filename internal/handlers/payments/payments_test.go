package payments

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/cookledger/internal/domain"
	"github.com/GlebRadaev/cookledger/internal/dto"
	"github.com/GlebRadaev/cookledger/internal/service/ledgerservice"
)

func NewMock(t *testing.T) (*PaymentHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestWebhookHandler(t *testing.T) {
	handler, service := NewMock(t)
	now := time.Now()

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful credit",
			body: `{"owner_id":1,"total_amount":"200.00","reference":"order-1"}`,
			prepareMock: func() {
				service.EXPECT().
					ApplyTransaction(gomock.Any(), 1, ledgerservice.ApplyRequest{
						Kind:        domain.TransactionKindCredit,
						GrossAmount: decimal.RequireFromString("200.00"),
						Description: "payment for order-1",
						Reference:   "order-1",
					}).
					Return(&domain.Transaction{
						ID:            "txn-1",
						Kind:          domain.TransactionKindCredit,
						GrossAmount:   decimal.RequireFromString("200.00"),
						CookShare:     decimal.RequireFromString("180.00"),
						PlatformShare: decimal.RequireFromString("20.00"),
						Reference:     "order-1",
						Status:        domain.TransactionStatusCompleted,
						CreatedAt:     now,
					}, decimal.RequireFromString("180.00"), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid request body",
			body:         `{"owner_id":`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Missing owner",
			body:         `{"total_amount":"200.00","reference":"order-1"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Replayed event is acknowledged",
			body: `{"owner_id":1,"total_amount":"200.00","reference":"order-1"}`,
			prepareMock: func() {
				service.EXPECT().
					ApplyTransaction(gomock.Any(), 1, gomock.Any()).
					Return(nil, decimal.Zero, ledgerservice.ErrDuplicateReference)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Non-positive amount",
			body: `{"owner_id":1,"total_amount":"0","reference":"order-1"}`,
			prepareMock: func() {
				service.EXPECT().
					ApplyTransaction(gomock.Any(), 1, gomock.Any()).
					Return(nil, decimal.Zero, ledgerservice.ErrInvalidAmount)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Internal server error",
			body: `{"owner_id":1,"total_amount":"200.00","reference":"order-1"}`,
			prepareMock: func() {
				service.EXPECT().
					ApplyTransaction(gomock.Any(), 1, gomock.Any()).
					Return(nil, decimal.Zero, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.Webhook(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.name == "Successful credit" {
				var body dto.ApplyTransactionResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, "txn-1", body.Transaction.ID)
				assert.True(t, decimal.RequireFromString("180.00").Equal(body.Balance))
			}
		})
	}
}
