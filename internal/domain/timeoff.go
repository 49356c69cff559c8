package domain

import "time"

// TimeOffStatus статус заявки на отгул
type TimeOffStatus string

const (
	TimeOffPending  TimeOffStatus = "pending"
	TimeOffApproved TimeOffStatus = "approved"
	TimeOffRejected TimeOffStatus = "rejected"
)

// timeOffTransitions переходы статусов отгула
var timeOffTransitions = map[TimeOffStatus][]TimeOffStatus{
	TimeOffPending: {TimeOffApproved, TimeOffRejected},
}

// CanTransitionTimeOff разрешён ли переход статуса отгула
func CanTransitionTimeOff(from, to TimeOffStatus) bool {
	for _, allowed := range timeOffTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TimeOffRange отгул стилиста, даты включительно
type TimeOffRange struct {
	ID        int64
	StylistID int64
	StartDate time.Time
	EndDate   time.Time
	Status    TimeOffStatus
	Reason    *string
	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers true, если дата попадает в диапазон [StartDate, EndDate]
func (r *TimeOffRange) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(r.StartDate)) && !d.After(DateOnly(r.EndDate))
}

// Blocks true, если отгул одобрен и покрывает дату
func (r *TimeOffRange) Blocks(date time.Time) bool {
	return r.Status == TimeOffApproved && r.Covers(date)
}
