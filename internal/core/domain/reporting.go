package domain

// DashboardSummary backs the dashboard stat cards.
type DashboardSummary struct {
	ProductsInStock int `json:"productsInStock"` // total units across the inventory
	PendingAccounts int `json:"pendingAccounts"` // accounts with a balance remaining
	TotalClients    int `json:"totalClients"`
	PaymentAlerts   int `json:"paymentAlerts"` // accounts due within the alert window
}
