package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// --- Mock Payment Service ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) VerifyPayment(ctx context.Context, req *services.VerifyPaymentRequest) (services.NotificationOutcome, *services.ServiceError) {
	args := m.Called(ctx, req)
	var svcErr *services.ServiceError
	if args.Get(1) != nil {
		svcErr = args.Get(1).(*services.ServiceError)
	}
	return args.Get(0).(services.NotificationOutcome), svcErr
}

func verifyRouter(svc services.PaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewPaymentController(svc, zap.NewNop())
	r.POST("/payment/verify", ctrl.Verify)
	return r
}

func postVerify(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/payment/verify", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestVerifyController(t *testing.T) {
	t.Run("Success - 200 with success true", func(t *testing.T) {
		// Arrange
		mockSvc := new(MockPaymentService)
		mockSvc.On("VerifyPayment", mock.Anything, mock.Anything).
			Return(services.NotificationOutcome{Attempted: true, Sent: true}, nil).Once()

		// Act
		rec := postVerify(verifyRouter(mockSvc),
			`{"gateway_order_id":"order_1","gateway_payment_id":"pay_1","gateway_signature":"abc"}`)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
		mockSvc.AssertExpectations(t)
	})

	t.Run("Success - 200 even when the confirmation email failed", func(t *testing.T) {
		mockSvc := new(MockPaymentService)
		mockSvc.On("VerifyPayment", mock.Anything, mock.Anything).
			Return(services.NotificationOutcome{Attempted: true, Sent: false, Error: "smtp timeout"}, nil).Once()

		rec := postVerify(verifyRouter(mockSvc),
			`{"gateway_order_id":"order_1","gateway_payment_id":"pay_1","gateway_signature":"abc"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	})

	t.Run("Failure - malformed JSON is 400 Missing payment details", func(t *testing.T) {
		mockSvc := new(MockPaymentService)

		rec := postVerify(verifyRouter(mockSvc), `{"gateway_order_id": `)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Missing payment details")
		mockSvc.AssertNotCalled(t, "VerifyPayment")
	})

	t.Run("Failure - service errors map status and message verbatim", func(t *testing.T) {
		cases := []struct {
			name    string
			svcErr  *services.ServiceError
			status  int
			message string
		}{
			{"invalid signature", &services.ServiceError{StatusCode: 400, Message: "Invalid signature"}, 400, "Invalid signature"},
			{"missing details", &services.ServiceError{StatusCode: 400, Message: "Missing payment details"}, 400, "Missing payment details"},
			{"secret unset", &services.ServiceError{StatusCode: 500, Message: "Server configuration error"}, 500, "Server configuration error"},
			{"db failure", &services.ServiceError{StatusCode: 500, Message: "Failed to update order status"}, 500, "Failed to update order status"},
			{"unknown order", &services.ServiceError{StatusCode: 404, Message: "Order not found"}, 404, "Order not found"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				mockSvc := new(MockPaymentService)
				mockSvc.On("VerifyPayment", mock.Anything, mock.Anything).
					Return(services.NotificationOutcome{}, tc.svcErr).Once()

				rec := postVerify(verifyRouter(mockSvc),
					`{"gateway_order_id":"order_1","gateway_payment_id":"pay_1","gateway_signature":"abc"}`)

				assert.Equal(t, tc.status, rec.Code)
				assert.Contains(t, rec.Body.String(), tc.message)
			})
		}
	})

	t.Run("Failure - panic inside the pipeline becomes a 500", func(t *testing.T) {
		mockSvc := new(MockPaymentService)
		mockSvc.On("VerifyPayment", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { panic("boom") }).
			Return(services.NotificationOutcome{}, nil).Once()

		rec := postVerify(verifyRouter(mockSvc),
			`{"gateway_order_id":"order_1","gateway_payment_id":"pay_1","gateway_signature":"abc"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Payment verification failed")
	})
}
