package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
)

// ErrPublish возвращается, если событие не удалось отправить
var ErrPublish = errors.New("notifier: failed to publish event")

// Producer публикует события о бронированиях в Kafka
type Producer struct {
	writer MessageWriter
	log    Logger
	now    func() time.Time
}

// NewProducer создает продюсер для topic
func NewProducer(brokers []string, topic string, log Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // события одной записи в одну партицию
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...interface{}) {}),
		ErrorLogger:  kafka.LoggerFunc(log.Error),
	}
	return NewProducerWithWriter(writer, log)
}

// NewProducerWithWriter создает продюсер поверх произвольного writer
func NewProducerWithWriter(writer MessageWriter, log Logger) *Producer {
	return &Producer{writer: writer, log: log, now: time.Now}
}

// BookingCreated публикует событие о созданной записи
func (p *Producer) BookingCreated(ctx context.Context, booking *domain.Booking) error {
	event := BookingCreatedEvent{
		EventID:         uuid.NewString(),
		EventType:       EventTypeBookingCreated,
		OccurredAt:      p.now().UTC(),
		BookingID:       booking.ID,
		DealershipID:    booking.DealershipID,
		WorkshopID:      booking.WorkshopID,
		ServiceID:       booking.ServiceID,
		ClientID:        booking.ClientID,
		VehicleID:       booking.VehicleID,
		TechnicianID:    booking.TechnicianID,
		Date:            booking.BookingDate.Format(domain.DateFormat),
		StartTime:       booking.StartTime.String(),
		DurationMinutes: booking.DurationMinutes,
		Channel:         string(booking.Channel),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(booking.ID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
		Time: event.OccurredAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: booking id=%d: %v", ErrPublish, booking.ID, err)
	}

	p.log.Info("Notifier: published %s for booking id=%d event_id=%s", event.EventType, booking.ID, event.EventID)
	return nil
}

// Close закрывает writer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// Nop продюсер-заглушка для окружений без Kafka
type Nop struct{}

func (Nop) BookingCreated(context.Context, *domain.Booking) error {
	return nil
}
