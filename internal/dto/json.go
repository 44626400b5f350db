package dto

import "github.com/shopspring/decimal"

func init() {
	// Clients consume amounts and quantities as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// MessageResponse is the body of delete and reset endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
