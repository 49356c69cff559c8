package run_sweeps

import "time"

// Имена sweep-задач
const (
	SweepExpireSlots   = "expire_slots"
	SweepAutoComplete  = "auto_complete"
	SweepAbandonOrders = "abandon_orders"
)

// Config параметры sweep-задач
type Config struct {
	BatchSize           int
	AutoCompleteEnabled bool
	AbandonAfter        time.Duration
}

// Result итог одного прохода
type Result struct {
	Sweep   string
	Scanned int
	Updated int
	Failed  int
}

func (r *Result) add(other Result) {
	r.Scanned += other.Scanned
	r.Updated += other.Updated
	r.Failed += other.Failed
}
