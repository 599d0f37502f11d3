package dto

import (
	"time"

	"github.com/delci/zapatos-api/internal/core/domain"
)

// CreateClientRequest defines the data needed to register a client.
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
}

// UpdateClientRequest defines the data allowed for updating a client.
// Pointers distinguish "not provided" from zero-value updates.
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ListClientsParams are the registry table filters: id fragment, name
// substring and phone digits.
type ListClientsParams struct {
	ID    string `form:"id"`
	Name  string `form:"name"`
	Phone string `form:"phone"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToClientResponse converts a domain.Client to its response DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ClientID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}

// ToListClientResponse converts a slice of clients to response DTOs.
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i, c := range clients {
		res[i] = ToClientResponse(&c)
	}
	return res
}
