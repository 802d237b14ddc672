package dto

import "time"

// ItemSpec carries the validated stringing fields from the boundary into the
// intake service. ScheduledTime nil means "default to now".
type ItemSpec struct {
	StringType    string
	TensionMain   int
	TensionCross  int
	ScheduledTime *time.Time
}

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type CustomerResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt"`
}

type CreateOrderRequest struct {
	CustomerID    uint    `json:"customerId"`
	StringType    string  `json:"stringType"`
	TensionMain   int     `json:"tensionMain"`
	TensionCross  int     `json:"tensionCross"`
	ScheduledTime *string `json:"scheduledTime,omitempty"`
	Note          *string `json:"note,omitempty"`
}

type AdminCreateOneRequest struct {
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	StringType    string  `json:"stringType"`
	TensionMain   int     `json:"tensionMain"`
	TensionCross  int     `json:"tensionCross"`
	ScheduledTime *string `json:"scheduledTime,omitempty"`
	Note          *string `json:"note,omitempty"`
}

// AdminCreateOneResponse returns only the generated identifiers, matching
// the walk-up intake flow that just needs a token to print.
type AdminCreateOneResponse struct {
	CustomerID uint   `json:"customerId"`
	ItemID     uint   `json:"itemId"`
	Token      string `json:"token"`
}
