package dto

// ItemResponse is the internal/admin projection of one stringing job.
type ItemResponse struct {
	ID            uint   `json:"id"`
	OrderID       uint   `json:"orderId"`
	Token         string `json:"token"`
	Status        string `json:"status"`
	StringType    string `json:"stringType"`
	TensionMain   int    `json:"tensionMain"`
	TensionCross  int    `json:"tensionCross"`
	ScheduledTime string `json:"scheduledTime"`
	CompletedTime string `json:"completedTime,omitempty"`
}

// PublicItemResponse is the unauthenticated customer projection. It never
// carries ids, phone numbers, or raw status.
type PublicItemResponse struct {
	Name         string `json:"name"`
	StringType   string `json:"stringType"`
	TensionMain  int    `json:"tensionMain"`
	TensionCross int    `json:"tensionCross"`
	DoneTime     string `json:"doneTime"`
}

type StaffAdvanceResponse struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type SetScheduledTimeRequest struct {
	ScheduledTime string `json:"scheduledTime"`
}
