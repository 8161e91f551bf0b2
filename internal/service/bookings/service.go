package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkshopBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WorkshopBooking/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование дилера по ID
func (s *Service) GetByID(ctx context.Context, dealershipID, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for dealership=%d", id, dealershipID)

	booking, err := s.load(ctx, "GetByID", dealershipID, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListWorkshopBookings активные бронирования мастерской на дату в порядке начала.
// Доступно только сотрудникам дилера.
func (s *Service) ListWorkshopBookings(ctx context.Context, dealershipID int64, req *models.ListWorkshopBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListWorkshopBookings: dealership=%d, workshop=%d, date=%s", dealershipID, req.WorkshopID, req.Date)

	if !req.IsPrivileged {
		s.logger.Warn("ListWorkshopBookings: access denied for dealership=%d", dealershipID)
		return nil, ErrAccessDenied
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	list, err := s.bookingRepo.GetActiveByWorkshopAndDate(ctx, req.WorkshopID, date)
	if err != nil {
		s.logger.Error("ListWorkshopBookings: repository error for workshop=%d: %v", req.WorkshopID, err)
		return nil, fmt.Errorf("%w: ListWorkshopBookings - repository error: %v", ErrInternal, err)
	}

	resp := &models.BookingListResponse{
		Date:     req.Date,
		Bookings: make([]*models.BookingResponse, 0, len(list)),
	}
	for _, b := range list {
		// Мастерская чужого дилера выглядит пустой
		if b.DealershipID != dealershipID {
			continue
		}
		resp.Bookings = append(resp.Bookings, models.FromDomainBooking(b))
	}
	resp.Total = len(resp.Bookings)

	return resp, nil
}

// Cancel отменяет бронирование. Завершенные и уже отмененные записи не меняются.
func (s *Service) Cancel(ctx context.Context, dealershipID, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d for dealership=%d", id, dealershipID)

	if req.CancellationReason != nil && len([]rune(*req.CancellationReason)) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return s.transition(ctx, "Cancel", dealershipID, id, domain.StatusCancelled, req.CancellationReason)
}

// UpdateStatus переводит бронирование в новый статус. Доступно только сотрудникам.
func (s *Service) UpdateStatus(ctx context.Context, dealershipID, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", id, req.Status)

	if !req.IsPrivileged {
		s.logger.Warn("UpdateStatus: access denied for booking id=%d", id)
		return nil, ErrAccessDenied
	}

	status := domain.BookingStatus(req.Status)
	if !status.IsValid() {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	var reason *string
	if status == domain.StatusCancelled {
		reason = req.CancellationReason
	}

	return s.transition(ctx, "UpdateStatus", dealershipID, id, status, reason)
}

// transition меняет статус под блокировкой строки
func (s *Service) transition(
	ctx context.Context,
	op string,
	dealershipID, id int64,
	next domain.BookingStatus,
	reason *string,
) (*models.BookingResponse, error) {
	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Читаем запись с блокировкой
		booking, err := s.load(txCtx, op, dealershipID, id)
		if err != nil {
			return err
		}

		// 2. Терминальные статусы не меняются
		if !booking.CanTransitionTo(next) {
			s.logger.Warn("%s: booking id=%d cannot move from %s to %s", op, id, booking.Status, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
		}

		// 3. Обновляем статус
		if err := s.bookingRepo.UpdateStatus(txCtx, id, next, reason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}

		// 4. Перечитываем, чтобы вернуть время изменения из базы
		result, err = s.load(txCtx, op, dealershipID, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: booking id=%d moved to status=%s", op, id, next)
	return models.FromDomainBooking(result), nil
}

// load читает бронирование и проверяет принадлежность дилеру
func (s *Service) load(ctx context.Context, op string, dealershipID, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.DealershipID != dealershipID {
		s.logger.Warn("%s: booking id=%d belongs to dealership=%d, requested %d", op, id, booking.DealershipID, dealershipID)
		return nil, ErrBookingNotFound
	}

	return booking, nil
}
