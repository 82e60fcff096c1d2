package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travel/internal/domain"
	"travel/internal/service"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// InitiatePaymentRequest is the HTTP request body for initiating a payment.
type InitiatePaymentRequest struct {
	BookingID string `json:"booking_id"`
}

// InitiatePaymentResponse is the HTTP response for a successful initiation.
type InitiatePaymentResponse struct {
	TransactionReference string `json:"transaction_reference"`
	CheckoutURL          string `json:"checkout_url"`
}

// VerifyPaymentResponse is the HTTP response for a verification callback.
type VerifyPaymentResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// PaymentResponse is the HTTP representation of a payment record.
type PaymentResponse struct {
	TransactionReference string  `json:"transaction_reference"`
	BookingID            string  `json:"booking_id"`
	Amount               float64 `json:"amount"`
	Status               string  `json:"status"`
}

// InitiatePayment handles POST /v1/initiate-payment
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.BookingID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "booking_id is required"})
		return
	}

	result, err := h.paymentService.InitiatePayment(c.Request.Context(), req.BookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, InitiatePaymentResponse{
		TransactionReference: result.TransactionReference,
		CheckoutURL:          result.CheckoutURL,
	})
}

// VerifyPayment handles GET /v1/verify-payment/:tx_ref
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	txRef := c.Param("tx_ref")

	result, err := h.paymentService.ConfirmPayment(c.Request.Context(), txRef)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Payment was not successful"
	if result.Status == domain.PaymentStatusCompleted {
		message = "Payment verified successfully"
	}

	respondJSON(c, http.StatusOK, VerifyPaymentResponse{
		Message: message,
		Status:  string(result.Status),
	})
}

// GetPayment handles GET /v1/payments/:tx_ref
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	txRef := c.Param("tx_ref")

	payment, err := h.paymentService.GetPayment(c.Request.Context(), txRef)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, PaymentResponse{
		TransactionReference: payment.TransactionReference,
		BookingID:            payment.BookingID,
		Amount:               payment.Amount,
		Status:               string(payment.Status),
	})
}
