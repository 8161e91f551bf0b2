package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopBooking/internal/availability"
	"github.com/m04kA/SMC-WorkshopBooking/internal/calendar"
	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	"github.com/m04kA/SMC-WorkshopBooking/internal/service/resolver"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/logger"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/ptr"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/types"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, req resolver.ResolveRequest) (domain.SchedulingContext, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.SchedulingContext), args.Error(1)
}

type mockBookings struct {
	mock.Mock
}

func (m *mockBookings) GetActiveByWorkshopAndDate(ctx context.Context, workshopID int64, date time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, workshopID, date)
	if b := args.Get(0); b != nil {
		return b.([]*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookings) CountActiveByService(ctx context.Context, dealershipID, serviceID int64, date time.Time) (int, error) {
	args := m.Called(ctx, dealershipID, serviceID, date)
	return args.Int(0), args.Error(1)
}

type metricsStub struct {
	observed []int
}

func (m *metricsStub) ObserveAvailableSlots(count int) {
	m.observed = append(m.observed, count)
}

var dubai = mustLocation("Asia/Dubai")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Понедельник 2025-06-02, мастерская 09:00-12:00, одна услуга одновременно
func mondayContext() domain.SchedulingContext {
	return domain.SchedulingContext{
		DealershipID: 1,
		WorkshopID:   10,
		Dealership:   domain.DealershipConfiguration{DealershipID: 1, ShiftDurationMinutes: 30, Timezone: "Asia/Dubai"},
		Location:     dubai,
		Service: domain.Service{
			ID:              5,
			DealershipID:    1,
			DurationMinutes: 30,
			AvailableDays:   [domain.DaysInWeek]bool{true, true, true, true, true, true, true},
			IsActive:        true,
		},
		Schedule: &domain.OperatingSchedule{
			WorkshopID:              10,
			DayOfWeek:               2,
			IsWorkingDay:            true,
			OpeningTime:             "09:00",
			ClosingTime:             "12:00",
			MaxSimultaneousServices: 1,
		},
		Date:      time.Date(2025, 6, 2, 0, 0, 0, 0, dubai),
		DayOfWeek: 2,
	}
}

func newUseCase(res Resolver, repo BookingRepository, now time.Time) (*UseCase, *metricsStub) {
	m := &metricsStub{}
	uc := NewUseCase(res, repo, availability.NewComputer(availability.DefaultPolicy()), m, logger.NewNop())
	uc.clock = calendar.FixedClock{T: now}
	return uc, m
}

var (
	request   = &Request{DealershipID: 1, WorkshopID: 10, ServiceID: 5, Date: "2025-06-02"}
	dayBefore = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
)

func TestExecute_ExcludesOccupiedSlots(t *testing.T) {
	sc := mondayContext()
	res := &mockResolver{}
	res.On("Resolve", mock.Anything, mock.Anything).Return(sc, nil)
	repo := &mockBookings{}
	repo.On("GetActiveByWorkshopAndDate", mock.Anything, int64(10), sc.Date).Return([]*domain.Booking{
		{ID: 1, WorkshopID: 10, StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusPending},
	}, nil)

	uc, m := newUseCase(res, repo, dayBefore)

	resp, err := uc.Execute(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:30", "11:00"}, resp.AvailableSlots)
	assert.Equal(t, 4, resp.TotalSlots)
	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, domain.ReasonNone, resp.Reason)
	assert.Equal(t, []int{4}, m.observed)
	repo.AssertNotCalled(t, "CountActiveByService", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_NotConfiguredIsReason(t *testing.T) {
	res := &mockResolver{}
	res.On("Resolve", mock.Anything, mock.Anything).Return(domain.SchedulingContext{}, resolver.ErrNotConfigured)

	uc, _ := newUseCase(res, &mockBookings{}, dayBefore)

	resp, err := uc.Execute(context.Background(), request)

	require.NoError(t, err)
	assert.Empty(t, resp.AvailableSlots)
	assert.NotNil(t, resp.AvailableSlots)
	assert.Equal(t, domain.ReasonNoScheduleConfigured, resp.Reason)
	assert.NotEmpty(t, resp.Message)
}

func TestExecute_DayBlocked(t *testing.T) {
	sc := mondayContext()
	sc.BlockedDate = &domain.BlockedDate{DealershipID: 1, FullDay: true}
	res := &mockResolver{}
	res.On("Resolve", mock.Anything, mock.Anything).Return(sc, nil)
	repo := &mockBookings{}
	repo.On("GetActiveByWorkshopAndDate", mock.Anything, int64(10), sc.Date).Return([]*domain.Booking{}, nil)

	uc, _ := newUseCase(res, repo, dayBefore)

	resp, err := uc.Execute(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, domain.ReasonDayBlocked, resp.Reason)
	assert.Equal(t, 0, resp.TotalSlots)
}

func TestExecute_DailyLimitCountsWholeDealership(t *testing.T) {
	sc := mondayContext()
	sc.Service.DailyLimit = ptr.Ptr(1)
	res := &mockResolver{}
	res.On("Resolve", mock.Anything, mock.Anything).Return(sc, nil)
	repo := &mockBookings{}
	repo.On("GetActiveByWorkshopAndDate", mock.Anything, int64(10), sc.Date).Return([]*domain.Booking{}, nil)
	repo.On("CountActiveByService", mock.Anything, int64(1), int64(5), sc.Date).Return(1, nil)

	uc, _ := newUseCase(res, repo, dayBefore)

	resp, err := uc.Execute(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, domain.ReasonDailyLimitReached, resp.Reason)
	repo.AssertExpectations(t)
}

func TestExecute_PastDate(t *testing.T) {
	sc := mondayContext()
	dayAfter := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)

	t.Run("клиенту отказано", func(t *testing.T) {
		res := &mockResolver{}
		res.On("Resolve", mock.Anything, mock.Anything).Return(sc, nil)

		uc, _ := newUseCase(res, &mockBookings{}, dayAfter)

		_, err := uc.Execute(context.Background(), request)

		assert.ErrorIs(t, err, ErrPastDate)
	})

	t.Run("сотрудник видит слоты", func(t *testing.T) {
		res := &mockResolver{}
		res.On("Resolve", mock.Anything, mock.Anything).Return(sc, nil)
		repo := &mockBookings{}
		repo.On("GetActiveByWorkshopAndDate", mock.Anything, int64(10), sc.Date).Return([]*domain.Booking{}, nil)

		uc, _ := newUseCase(res, repo, dayAfter)

		req := *request
		req.IsPrivileged = true
		resp, err := uc.Execute(context.Background(), &req)

		require.NoError(t, err)
		assert.Len(t, resp.AvailableSlots, 5)
	})
}

func TestExecute_TodayUsesDealershipClock(t *testing.T) {
	sc := mondayContext()
	res := &mockResolver{}
	res.On("Resolve", mock.Anything, mock.Anything).Return(sc, nil)
	repo := &mockBookings{}
	repo.On("GetActiveByWorkshopAndDate", mock.Anything, int64(10), sc.Date).Return([]*domain.Booking{}, nil)

	// 06:30 UTC = 10:30 в Дубае
	uc, _ := newUseCase(res, repo, time.Date(2025, 6, 2, 6, 30, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"11:00"}, resp.AvailableSlots)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name       string
		resolveErr error
		want       error
	}{
		{name: "услуга не найдена", resolveErr: resolver.ErrServiceNotFound, want: ErrServiceNotFound},
		{name: "некорректная дата", resolveErr: resolver.ErrInvalidDate, want: ErrInvalidDate},
		{name: "некорректная конфигурация", resolveErr: resolver.ErrInvalidConfiguration, want: ErrInvalidConfiguration},
		{name: "ошибка хранилища", resolveErr: resolver.ErrInternal, want: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &mockResolver{}
			res.On("Resolve", mock.Anything, mock.Anything).Return(domain.SchedulingContext{}, tt.resolveErr)

			uc, _ := newUseCase(res, &mockBookings{}, dayBefore)

			_, err := uc.Execute(context.Background(), request)

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_StorageError(t *testing.T) {
	sc := mondayContext()
	res := &mockResolver{}
	res.On("Resolve", mock.Anything, mock.Anything).Return(sc, nil)
	repo := &mockBookings{}
	repo.On("GetActiveByWorkshopAndDate", mock.Anything, int64(10), sc.Date).Return(nil, errors.New("connection refused"))

	uc, _ := newUseCase(res, repo, dayBefore)

	_, err := uc.Execute(context.Background(), request)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _ := newUseCase(&mockResolver{}, &mockBookings{}, dayBefore)

	_, err := uc.Execute(context.Background(), &Request{DealershipID: 1, WorkshopID: 0, ServiceID: 5, Date: "2025-06-02"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
