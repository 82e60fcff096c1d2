package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"travel/internal/gateway"
)

const (
	defaultBaseURL = "https://api.chapa.co"
	defaultTimeout = 10 * time.Second

	statusSuccess = "success"
)

// Config holds the Chapa client configuration. The secret key is passed in
// explicitly at construction and is never logged.
type Config struct {
	SecretKey string
	BaseURL   string
	Timeout   time.Duration
}

// Client talks to the Chapa transaction API over HTTPS with bearer-token
// authentication. It implements gateway.Client.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// New creates a Chapa client.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		secretKey:  cfg.SecretKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// initializeRequest is the wire format of Chapa's initialize endpoint.
// Chapa expects the amount as a string.
type initializeRequest struct {
	Amount                   string `json:"amount"`
	Currency                 string `json:"currency"`
	Email                    string `json:"email"`
	FirstName                string `json:"first_name"`
	LastName                 string `json:"last_name"`
	TxRef                    string `json:"tx_ref"`
	CallbackURL              string `json:"callback_url"`
	ReturnURL                string `json:"return_url"`
	CustomizationTitle       string `json:"customization[title],omitempty"`
	CustomizationDescription string `json:"customization[description],omitempty"`
}

type initializeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status string `json:"status"`
	} `json:"data"`
}

// Initialize opens a transaction with Chapa.
func (c *Client) Initialize(ctx context.Context, req gateway.InitializeRequest) (*gateway.InitializeResponse, error) {
	payload := initializeRequest{
		Amount:                   strconv.FormatFloat(req.Amount, 'f', 2, 64),
		Currency:                 req.Currency,
		Email:                    req.Email,
		FirstName:                req.FirstName,
		LastName:                 req.LastName,
		TxRef:                    req.TxRef,
		CallbackURL:              req.CallbackURL,
		ReturnURL:                req.ReturnURL,
		CustomizationTitle:       req.Title,
		CustomizationDescription: req.Description,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrUnreachable, err)
	}
	defer httpResp.Body.Close()

	// A body that isn't Chapa's JSON (an intermediary's error page, a
	// truncated response) means we never reached the gateway proper.
	var resp initializeResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: decoding initialize response: %v", gateway.ErrUnreachable, err)
	}

	if httpResp.StatusCode != http.StatusOK || resp.Status != statusSuccess {
		reason := resp.Message
		if reason == "" {
			reason = fmt.Sprintf("unexpected status code %d", httpResp.StatusCode)
		}
		return nil, &gateway.RejectedError{Reason: reason}
	}

	return &gateway.InitializeResponse{CheckoutURL: resp.Data.CheckoutURL}, nil
}

// Verify reports Chapa's view of the transaction.
func (c *Client) Verify(ctx context.Context, txRef string) (*gateway.VerifyResult, error) {
	endpoint := c.baseURL + "/v1/transaction/verify/" + url.PathEscape(txRef)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrUnreachable, err)
	}
	defer httpResp.Body.Close()

	var resp verifyResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: decoding verify response: %v", gateway.ErrUnreachable, err)
	}

	result := &gateway.VerifyResult{
		Success:   httpResp.StatusCode == http.StatusOK && resp.Status == statusSuccess && resp.Data.Status == statusSuccess,
		RawStatus: resp.Data.Status,
	}
	if result.RawStatus == "" {
		result.RawStatus = resp.Status
	}

	return result, nil
}

// Ensure the interface is satisfied.
var _ gateway.Client = (*Client)(nil)
