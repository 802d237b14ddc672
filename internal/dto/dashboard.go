package dto

// ItemSummary is one denormalized row of the daily worklist and the search
// results: item fields joined with the owning customer.
type ItemSummary struct {
	ID            uint   `json:"id"`
	Token         string `json:"token"`
	Status        string `json:"status"`
	StringType    string `json:"stringType"`
	TensionMain   int    `json:"tensionMain"`
	TensionCross  int    `json:"tensionCross"`
	ScheduledTime string `json:"scheduledTime"`
	CompletedTime string `json:"completedTime,omitempty"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
}

// DaySummaryResponse zero-fills all four statuses and all 24 hours so
// dashboard clients never have to guess at missing keys.
type DaySummaryResponse struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
	ByHour   map[string]int `json:"byHour"`
}

// MonthUnfinishedResponse maps ISO dates to counts of not-yet-finished jobs;
// days with zero count are omitted.
type MonthUnfinishedResponse struct {
	Days map[string]int `json:"days"`
}
