package domain

// Client is an entry in the client registry.
type Client struct {
	ClientID string `json:"id"` // Primary key (UUID)
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
	AuditFields
}
