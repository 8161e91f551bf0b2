package get_available_slots

import (
	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	DealershipID int64  // ID дилера
	WorkshopID   int64  // ID мастерской
	ServiceID    int64  // ID услуги
	Date         string // Дата YYYY-MM-DD в часовом поясе дилера
	IsPrivileged bool   // Сотрудник может смотреть прошедшие даты
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            string                      // Дата, на которую запрашивались слоты
	AvailableSlots  []types.TimeString          // Времена начала в порядке проверки
	TotalSlots      int                         // Количество слотов
	Reason          domain.UnavailabilityReason // Причина пустого ответа
	Message         string                      // Текст причины
	FallbackApplied bool                        // Слот добавлен по окончанию приема
}
