package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-WorkshopBooking/internal/availability"
	"github.com/m04kA/SMC-WorkshopBooking/internal/calendar"
	"github.com/m04kA/SMC-WorkshopBooking/internal/capacity"
	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkshopBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WorkshopBooking/internal/service/resolver"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

// DefaultNotifyTimeout время на отправку события после коммита
const DefaultNotifyTimeout = 5 * time.Second

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	directory     DirectoryRepository
	resolver      Resolver
	tenants       TenantClient
	computer      *availability.Computer
	txManager     TransactionManager
	notifier      Notifier
	metrics       Metrics
	clock         calendar.Clock
	notifyTimeout time.Duration
	logger        Logger

	pending sync.WaitGroup
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	directory DirectoryRepository,
	resolver Resolver,
	tenants TenantClient,
	computer *availability.Computer,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	notifyTimeout time.Duration,
	logger Logger,
) *UseCase {
	if notifyTimeout <= 0 {
		notifyTimeout = DefaultNotifyTimeout
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		directory:     directory,
		resolver:      resolver,
		tenants:       tenants,
		computer:      computer,
		txManager:     txManager,
		notifier:      notifier,
		metrics:       metrics,
		clock:         calendar.RealClock{},
		notifyTimeout: notifyTimeout,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверки перед вставкой носят рекомендательный характер: гонку за один слот
// разрешает уникальный индекс, проигравший получает ErrDuplicateBooking.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: dealership=%d, service=%d, vehicle=%d, date=%s, time=%s, channel=%s",
		req.DealershipID, req.ServiceID, req.VehicleID, req.Date, req.StartTime, req.Channel)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	// 2. Клиент по ID или по телефону
	client, err := uc.findClient(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Мастерская: явная или по умолчанию у дилера
	workshop, err := uc.tenants.ResolveWorkshop(ctx, req.DealershipID, req.WorkshopID)
	if err != nil {
		return nil, uc.mapTenantError(req.DealershipID, err)
	}

	// 4. Контекст планирования
	sc, err := uc.resolver.Resolve(ctx, resolver.ResolveRequest{
		DealershipID: req.DealershipID,
		WorkshopID:   workshop.ID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
	})
	if err != nil {
		return nil, uc.mapResolveError(err)
	}

	// 5. Прошедшие даты доступны только сотрудникам
	now := calendar.NowIn(uc.clock, sc.Location)
	if !req.IsPrivileged && calendar.IsPastDate(sc.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past for dealership=%d", req.Date, req.DealershipID)
		return nil, ErrPastDate
	}
	now = evaluationTime(sc, now, req.IsPrivileged)

	// 6. Ссылочные проверки: машина клиента, мастер этой мастерской
	if err := uc.checkVehicle(ctx, client, req.VehicleID); err != nil {
		return nil, err
	}
	if req.TechnicianID != nil {
		if err := uc.checkTechnician(ctx, sc, *req.TechnicianID); err != nil {
			return nil, err
		}
	}

	var (
		result     *domain.Booking
		byFallback bool
	)

	// 7. Повторная проверка правил и вставка в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		load, err := uc.dayLoad(txCtx, sc)
		if err != nil {
			return err
		}

		byFallback, err = uc.checkRules(sc, load, start, now)
		if err != nil {
			return err
		}

		booking := &domain.Booking{
			DealershipID:    sc.DealershipID,
			WorkshopID:      sc.WorkshopID,
			ServiceID:       sc.Service.ID,
			ClientID:        client.ID,
			VehicleID:       req.VehicleID,
			TechnicianID:    req.TechnicianID,
			BookingDate:     sc.Date,
			StartTime:       start,
			DurationMinutes: sc.Service.DurationMinutes,
			Status:          domain.StatusPending,
			Channel:         domain.Channel(req.Channel),
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return uc.mapCreateError(err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (workshop=%d, %s %s, fallback=%t)",
		result.ID, result.WorkshopID, sc.DateString(), result.StartTime, byFallback)
	uc.metrics.IncBookingCreated(string(result.Channel))

	// 8. Уведомление отправляется после коммита и не влияет на результат
	uc.notify(result)

	return toResponse(result, byFallback), nil
}

// checkRules правила дня и слота для start. Возвращает true, если слот принят как вынужденный.
func (uc *UseCase) checkRules(sc domain.SchedulingContext, load capacity.DayLoad, start types.TimeString, now time.Time) (bool, error) {
	// Шаги 1-4
	if reason := availability.CheckDay(sc, load); reason != domain.ReasonNone {
		uc.logger.Warn("CreateBooking: day %s unavailable for service=%d: %s", sc.DateString(), sc.Service.ID, reason)
		if reason == domain.ReasonDailyLimitReached {
			return false, &CapacityError{Err: ErrDailyLimitReached, Current: load.ServiceDailyCount, Limit: *sc.Service.DailyLimit}
		}
		return false, &RuleError{Err: ErrDayUnavailable, Rule: string(reason)}
	}

	// Рабочие часы проверяются отдельно от сетки слотов
	if v := availability.CheckWithinHours(sc.Schedule, start); v != availability.SlotOK {
		uc.logger.Warn("CreateBooking: %s outside working hours %s-%s", start, sc.Schedule.OpeningTime, sc.Schedule.ClosingTime)
		return false, &RuleError{Err: ErrSlotNotOffered, Rule: v.String()}
	}

	// Общий лимит записей на дату. 0 закрывает день.
	if blocked := sc.BlockedDate; blocked != nil && blocked.MaxTotalAppointments != nil {
		total := capacity.CountActive(load.Bookings)
		if total >= *blocked.MaxTotalAppointments {
			uc.logger.Warn("CreateBooking: total limit on %s reached, %d/%d", sc.DateString(), total, *blocked.MaxTotalAppointments)
			return false, &CapacityError{Err: ErrDailyTotalLimitExceeded, Current: total, Limit: *blocked.MaxTotalAppointments}
		}
	}

	// Шаг 6 для запрошенного времени
	failures := availability.SlotFailures(sc, load, start, now)
	onGrid, err := availability.OnGrid(sc, start)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to build slot grid for workshop=%d: %v", sc.WorkshopID, err)
		return false, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if len(failures) == 0 && onGrid {
		return false, nil
	}

	// Вынужденный слот по окончанию приема принимается при любых отказах,
	// если вычислитель предлагает ровно его
	computed, err := uc.computer.Compute(sc, load, now)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to compute slots for workshop=%d: %v", sc.WorkshopID, err)
		return false, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if computed.FallbackApplied && len(computed.Slots) == 1 && computed.Slots[0] == start {
		uc.logger.Warn("CreateBooking: %s accepted as reception fallback despite %v", start, failures)
		return true, nil
	}

	if len(failures) == 0 {
		uc.logger.Warn("CreateBooking: %s is not on the slot grid of workshop=%d", start, sc.WorkshopID)
		return false, &RuleError{Err: ErrSlotNotOffered, Rule: availability.SlotOffGrid.String()}
	}

	uc.logger.Warn("CreateBooking: slot %s rejected: %v", start, failures)
	return false, slotError(sc, load, start, failures[0])
}

func slotError(sc domain.SchedulingContext, load capacity.DayLoad, start types.TimeString, verdict availability.SlotVerdict) error {
	switch verdict {
	case availability.SlotInPast:
		return fmt.Errorf("%w: slot %s has already started", ErrPastDate, start)
	case availability.SlotArrivalsFull:
		return &CapacityError{
			Err:     ErrSlotFull,
			Current: capacity.CountAtExactTime(load.Bookings, start),
			Limit:   *sc.Schedule.MaxArrivalsPerSlot,
		}
	case availability.SlotOverlapFull:
		return &CapacityError{
			Err:     ErrSlotFull,
			Current: capacity.CountOverlapping(load.Bookings, start, sc.Service.DurationMinutes),
			Limit:   sc.Schedule.MaxSimultaneousServices,
		}
	}
	return &RuleError{Err: ErrSlotNotOffered, Rule: verdict.String()}
}

// evaluationTime момент, на который проверяются слоты. Для сотрудника, записывающего
// на сегодня или задним числом, день оценивается так, будто он еще не начался.
func evaluationTime(sc domain.SchedulingContext, now time.Time, privileged bool) time.Time {
	if privileged && !sc.Date.After(now) {
		return sc.Date.Add(-time.Minute)
	}
	return now
}

func (uc *UseCase) dayLoad(ctx context.Context, sc domain.SchedulingContext) (capacity.DayLoad, error) {
	bookings, err := uc.bookingRepo.GetActiveByWorkshopAndDate(ctx, sc.WorkshopID, sc.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings for workshop=%d: %v", sc.WorkshopID, err)
		return capacity.DayLoad{}, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	count := 0
	if sc.Service.DailyLimit != nil {
		count, err = uc.bookingRepo.CountActiveByService(ctx, sc.DealershipID, sc.Service.ID, sc.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count bookings for service=%d: %v", sc.Service.ID, err)
			return capacity.DayLoad{}, fmt.Errorf("%w: failed to count service bookings: %v", ErrInternal, err)
		}
	}

	return capacity.DayLoad{Bookings: bookings, ServiceDailyCount: count}, nil
}

func (uc *UseCase) notify(booking *domain.Booking) {
	if uc.notifier == nil {
		return
	}
	uc.pending.Add(1)
	go func() {
		defer uc.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), uc.notifyTimeout)
		defer cancel()

		if err := uc.notifier.BookingCreated(ctx, booking); err != nil {
			uc.logger.Warn("CreateBooking: failed to notify about booking id=%d: %v", booking.ID, err)
		}
	}()
}

// Close дожидается отправки уведомлений, запущенных до вызова, или отмены ctx
func (uc *UseCase) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		uc.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: pending notifications: %v", ErrInternal, ctx.Err())
	}
}

func (uc *UseCase) mapCreateError(err error) error {
	var ce *bookingRepo.ConstraintError
	switch {
	case errors.Is(err, bookingRepo.ErrDuplicateBooking):
		uc.logger.Warn("CreateBooking: duplicate booking: %v", err)
		return ErrDuplicateBooking
	case errors.As(err, &ce) && errors.Is(ce.Err, bookingRepo.ErrForeignKeyViolation):
		uc.logger.Warn("CreateBooking: foreign key violation: %v", err)
		return &RuleError{Err: ErrReferenceNotFound, Rule: ce.Constraint}
	case errors.As(err, &ce) && errors.Is(ce.Err, bookingRepo.ErrCheckViolation):
		uc.logger.Warn("CreateBooking: check violation: %v", err)
		return &RuleError{Err: ErrInvalidBookingData, Rule: ce.Constraint}
	}
	uc.logger.Error("CreateBooking: failed to create booking: %v", err)
	return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
}

func toResponse(b *domain.Booking, byFallback bool) *Response {
	return &Response{
		ID:                 b.ID,
		DealershipID:       b.DealershipID,
		WorkshopID:         b.WorkshopID,
		ServiceID:          b.ServiceID,
		ClientID:           b.ClientID,
		VehicleID:          b.VehicleID,
		TechnicianID:       b.TechnicianID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime,
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		Channel:            string(b.Channel),
		Notes:              b.Notes,
		AcceptedByFallback: byFallback,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
