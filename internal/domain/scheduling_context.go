package domain

import "time"

// SchedulingContext everything availability and commit need for one
// (dealership, workshop, service, date). Built once per request and passed by value.
type SchedulingContext struct {
	DealershipID int64
	WorkshopID   int64
	Dealership   DealershipConfiguration
	Location     *time.Location
	Service      Service
	Schedule     *OperatingSchedule // nil: строка расписания на этот день отсутствует
	BlockedDate  *BlockedDate
	Date         time.Time // полночь даты в часовом поясе дилера
	DayOfWeek    int       // 1 = Sunday ... 7 = Saturday
}

// DateString date as YYYY-MM-DD
func (sc SchedulingContext) DateString() string {
	return sc.Date.Format(DateFormat)
}
