package domain

import "time"

// DisplayTimeLayout is the customer-facing timestamp format.
const DisplayTimeLayout = "2006-01-02 15:04"

// Item is one stringing job. ScheduledTime is the promised estimate and
// stays admin-editable; CompletedTime is owned by the state machine and is
// non-nil exactly while Status == DONE.
type Item struct {
	ID            uint
	OrderID       uint
	Token         string
	StringType    string
	TensionMain   int
	TensionCross  int
	ScheduledTime time.Time
	CompletedTime *time.Time
	Status        Status
}

// ApplyStatus moves the item to next and keeps CompletedTime in step:
// set when entering DONE, cleared when leaving it.
func (i *Item) ApplyStatus(next Status, now time.Time) {
	if next == StatusDone && i.Status != StatusDone && i.CompletedTime == nil {
		t := now
		i.CompletedTime = &t
	}
	if next != StatusDone {
		i.CompletedTime = nil
	}
	i.Status = next
}

// Advance applies the staff scan ring to the item.
func (i *Item) Advance(now time.Time) {
	i.ApplyStatus(i.Status.Next(), now)
}

// DoneTime is the single customer-visible timestamp: actual completion when
// present, otherwise the schedule.
func (i Item) DoneTime() time.Time {
	if i.CompletedTime != nil {
		return *i.CompletedTime
	}
	return i.ScheduledTime
}

// ItemDetail is an item joined with its owning customer, as read for
// tracking lookups and dashboard rows.
type ItemDetail struct {
	Item
	CustomerName  string
	CustomerPhone string
}
