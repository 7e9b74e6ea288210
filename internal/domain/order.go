package domain

import "encoding/json"

type Customer struct {
	Name       string
	Email      string
	Phone      string
	DocumentID string
	Address    string
}

type OrderLine struct {
	ProductID ProductID
	Quantity  int
	UnitPrice Money
}

type Order struct {
	Customer Customer
	Lines    []OrderLine
}

type OrderConfirmation struct {
	RequestID string
	// Body is the acknowledgement returned by the remote API, kept verbatim.
	Body       json.RawMessage
	Summary    string
	HandoffURL string
}
