package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travel/internal/service"
)

// GuestHandler handles HTTP requests for guests.
type GuestHandler struct {
	guestService *service.GuestService
}

// NewGuestHandler creates a new GuestHandler.
func NewGuestHandler(guestService *service.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

// CreateGuestRequest is the HTTP request body for registering a guest.
type CreateGuestRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// GuestResponse is the HTTP representation of a guest.
type GuestResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CreateGuest handles POST /v1/guests
func (h *GuestHandler) CreateGuest(c *gin.Context) {
	var req CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	guest, err := h.guestService.CreateGuest(c.Request.Context(), service.CreateGuestRequest{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, GuestResponse{
		ID:        guest.ID,
		Email:     guest.Email,
		FirstName: guest.FirstName,
		LastName:  guest.LastName,
	})
}

// GetGuest handles GET /v1/guests/:id
func (h *GuestHandler) GetGuest(c *gin.Context) {
	guest, err := h.guestService.GetGuest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, GuestResponse{
		ID:        guest.ID,
		Email:     guest.Email,
		FirstName: guest.FirstName,
		LastName:  guest.LastName,
	})
}

// GetAll handles GET /v1/guests
func (h *GuestHandler) GetAll(c *gin.Context) {
	guests, err := h.guestService.GetAllGuests(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]GuestResponse, 0, len(guests))
	for _, guest := range guests {
		responses = append(responses, GuestResponse{
			ID:        guest.ID,
			Email:     guest.Email,
			FirstName: guest.FirstName,
			LastName:  guest.LastName,
		})
	}

	respondJSON(c, http.StatusOK, responses)
}
