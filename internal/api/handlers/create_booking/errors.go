package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-WorkshopBooking/internal/usecase/create_booking"
)

// Коды ошибок записи
const (
	CodeInvalidChannel          = "INVALID_CHANNEL"
	CodeWorkshopNotFound        = "WORKSHOP_NOT_FOUND"
	CodeClientNotFound          = "CLIENT_NOT_FOUND"
	CodeVehicleNotOwned         = "VEHICLE_NOT_OWNED"
	CodeServiceNotFound         = "SERVICE_NOT_FOUND"
	CodeTechnicianUnavailable   = "TECHNICIAN_UNAVAILABLE"
	CodePastDate                = "PAST_DATE"
	CodeNoScheduleConfigured    = "NO_SCHEDULE_CONFIGURED"
	CodeInvalidConfiguration    = "INVALID_CONFIGURATION"
	CodeSlotNotOffered          = "SLOT_NOT_OFFERED"
	CodeSlotFull                = "SLOT_FULL"
	CodeDailyLimitReached       = "DAILY_LIMIT_REACHED"
	CodeDailyTotalLimitExceeded = "DAILY_TOTAL_LIMIT_EXCEEDED"
	CodeDuplicateBooking        = "DUPLICATE_BOOKING"
	CodeReferenceNotFound       = "REFERENCE_NOT_FOUND"
	CodeInvalidBookingData      = "INVALID_BOOKING_DATA"
)

type errorMapping struct {
	target   error
	status   int
	code     string
	message  string
	solution string
}

var errorMappings = []errorMapping{
	{createBooking.ErrInvalidInput, http.StatusBadRequest, handlers.CodeInvalidInput,
		"некорректные данные бронирования", "проверьте обязательные поля, формат даты YYYY-MM-DD и времени HH:MM"},
	{createBooking.ErrInvalidChannel, http.StatusBadRequest, CodeInvalidChannel,
		"неизвестный канал записи", "используйте один из каналов: web, staff, whatsapp, sms, voice_ai, phone"},
	{createBooking.ErrWorkshopNotFound, http.StatusNotFound, CodeWorkshopNotFound,
		"мастерская не найдена", "уточните мастерскую у дилера или не передавайте workshopId"},
	{createBooking.ErrClientNotFound, http.StatusNotFound, CodeClientNotFound,
		"клиент не найден", "зарегистрируйте клиента у дилера или проверьте номер телефона"},
	{createBooking.ErrVehicleNotOwned, http.StatusBadRequest, CodeVehicleNotOwned,
		"автомобиль не принадлежит клиенту", "выберите автомобиль из списка автомобилей клиента"},
	{createBooking.ErrServiceNotFound, http.StatusNotFound, CodeServiceNotFound,
		"услуга не найдена", "выберите активную услугу дилера"},
	{createBooking.ErrTechnicianUnavailable, http.StatusBadRequest, CodeTechnicianUnavailable,
		"мастер недоступен", "выберите активного мастера этой мастерской или не назначайте мастера"},
	{createBooking.ErrPastDate, http.StatusBadRequest, CodePastDate,
		"дата или время уже прошли", "выберите будущий слот из списка доступных"},
	{createBooking.ErrNotConfigured, http.StatusUnprocessableEntity, CodeNoScheduleConfigured,
		"для этого дня не настроено расписание мастерской", "обратитесь к сотрудникам дилера"},
	{createBooking.ErrInvalidConfiguration, http.StatusInternalServerError, CodeInvalidConfiguration,
		"некорректная конфигурация расписания", "обратитесь к сотрудникам дилера"},
	{createBooking.ErrDayUnavailable, http.StatusBadRequest, CodeSlotNotOffered,
		"запись на этот день недоступна", "выберите другую дату"},
	{createBooking.ErrSlotNotOffered, http.StatusBadRequest, CodeSlotNotOffered,
		"выбранное время не предлагается для записи", "выберите слот из списка доступных"},
	{createBooking.ErrSlotFull, http.StatusConflict, CodeSlotFull,
		"выбранный слот заполнен", "выберите другой слот из списка доступных"},
	{createBooking.ErrDailyLimitReached, http.StatusConflict, CodeDailyLimitReached,
		"дневной лимит записей на услугу исчерпан", "выберите другую дату"},
	{createBooking.ErrDailyTotalLimitExceeded, http.StatusConflict, CodeDailyTotalLimitExceeded,
		"лимит записей на дату исчерпан", "выберите другую дату"},
	{createBooking.ErrDuplicateBooking, http.StatusConflict, CodeDuplicateBooking,
		"автомобиль уже записан на это время", "проверьте существующие записи автомобиля"},
	{createBooking.ErrReferenceNotFound, http.StatusNotFound, CodeReferenceNotFound,
		"связанная запись не найдена", "обновите данные клиента, автомобиля или мастера и повторите"},
	{createBooking.ErrInvalidBookingData, http.StatusBadRequest, CodeInvalidBookingData,
		"данные бронирования не прошли проверку", "проверьте длительность услуги и время записи"},
}

// toErrorResponse возвращает HTTP статус и тело для ошибки use case.
// Неизвестные ошибки становятся INTERNAL_ERROR без деталей.
func toErrorResponse(err error) (int, handlers.ErrorResponse) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}

		body := handlers.ErrorResponse{
			Message:   m.message,
			ErrorCode: m.code,
			Solution:  m.solution,
		}

		var capErr *createBooking.CapacityError
		var ruleErr *createBooking.RuleError
		switch {
		case errors.As(err, &capErr):
			body.Details = map[string]any{"current": capErr.Current, "limit": capErr.Limit}
		case errors.As(err, &ruleErr):
			body.Details = map[string]any{"rule": ruleErr.Rule}
			// Для закрытого дня код ответа совпадает с причиной из ответа доступности
			if m.target == createBooking.ErrDayUnavailable && ruleErr.Rule != "" {
				body.ErrorCode = ruleErr.Rule
			}
		}

		return m.status, body
	}

	return http.StatusInternalServerError, handlers.ErrorResponse{
		Message:   "внутренняя ошибка сервера",
		ErrorCode: handlers.CodeInternalError,
	}
}
