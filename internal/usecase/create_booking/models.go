package create_booking

import (
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	DealershipID int64   `validate:"required,gt=0"`
	WorkshopID   *int64  `validate:"omitempty,gt=0"`                           // Без значения берется мастерская по умолчанию
	ServiceID    int64   `validate:"required,gt=0"`                            // ID услуги
	ClientID     *int64  `validate:"required_without=Phone,omitempty,gt=0"`    // ID клиента
	Phone        *string `validate:"required_without=ClientID,omitempty,e164"` // Телефон клиента, если ID неизвестен
	VehicleID    int64   `validate:"required,gt=0"`                            // ID автомобиля
	TechnicianID *int64  `validate:"omitempty,gt=0"`                           // Назначенный мастер (опционально)
	Date         string  `validate:"required,datetime=2006-01-02"`             // Дата YYYY-MM-DD в часовом поясе дилера
	StartTime    string  `validate:"required,datetime=15:04"`                  // Время начала HH:MM
	Channel      string  `validate:"required"`                                 // Канал записи
	Notes        *string `validate:"omitempty,max=500"`                        // Дополнительные заметки
	IsPrivileged bool    // Сотрудник может записывать на прошедшие даты
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                 int64            // ID созданного бронирования
	DealershipID       int64            // ID дилера
	WorkshopID         int64            // ID мастерской
	ServiceID          int64            // ID услуги
	ClientID           int64            // ID клиента
	VehicleID          int64            // ID автомобиля
	TechnicianID       *int64           // ID мастера
	BookingDate        string           // Дата бронирования
	StartTime          types.TimeString // Время начала
	DurationMinutes    int              // Длительность в минутах
	Status             string           // Статус бронирования
	Channel            string           // Канал записи
	Notes              *string          // Заметки
	AcceptedByFallback bool             // Слот принят как вынужденный по окончанию приема

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
