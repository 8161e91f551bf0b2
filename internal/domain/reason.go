package domain

// UnavailabilityReason explains an empty availability result
type UnavailabilityReason string

const (
	ReasonNone                     UnavailabilityReason = ""
	ReasonServiceNotAvailableOnDay UnavailabilityReason = "SERVICE_NOT_AVAILABLE_ON_DAY"
	ReasonDayNotWorking            UnavailabilityReason = "DAY_NOT_WORKING"
	ReasonDayBlocked               UnavailabilityReason = "DAY_BLOCKED"
	ReasonDailyLimitReached        UnavailabilityReason = "DAILY_LIMIT_REACHED"
	ReasonNoScheduleConfigured     UnavailabilityReason = "NO_SCHEDULE_CONFIGURED"
)

// Message human readable text for the reason
func (r UnavailabilityReason) Message() string {
	switch r {
	case ReasonServiceNotAvailableOnDay:
		return "услуга не оказывается в этот день недели"
	case ReasonDayNotWorking:
		return "мастерская не работает в этот день"
	case ReasonDayBlocked:
		return "день закрыт для записи"
	case ReasonDailyLimitReached:
		return "дневной лимит записей на услугу исчерпан"
	case ReasonNoScheduleConfigured:
		return "для этого дня не настроено расписание"
	}
	return ""
}
