package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkshopBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WorkshopBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/logger"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/ptr"
)

type memoryRepo struct {
	bookings  map[int64]*domain.Booking
	updateErr error
	listErr   error
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memoryRepo) GetActiveByWorkshopAndDate(_ context.Context, workshopID int64, date time.Time) ([]*domain.Booking, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Booking
	for id := int64(1); id <= int64(len(r.bookings)); id++ {
		b, ok := r.bookings[id]
		if !ok || b.WorkshopID != workshopID || !b.BookingDate.Equal(date) || !b.IsActive() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *memoryRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, reason *string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	if status == domain.StatusCancelled {
		now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		b.CancellationReason = reason
		b.CancelledAt = &now
	}
	return nil
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService(status domain.BookingStatus) (*Service, *memoryRepo) {
	repo := &memoryRepo{bookings: map[int64]*domain.Booking{
		1: {
			ID:              1,
			DealershipID:    1,
			WorkshopID:      10,
			BookingDate:     time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			StartTime:       "10:00",
			DurationMinutes: 30,
			Status:          status,
			Channel:         domain.ChannelWeb,
		},
	}}
	return NewService(repo, passTx{}, logger.NewNop()), repo
}

func TestGetByID(t *testing.T) {
	svc, _ := newService(domain.StatusPending)

	resp, err := svc.GetByID(context.Background(), 1, 1)

	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "web", resp.Channel)
}

func TestGetByID_OtherDealership(t *testing.T) {
	svc, _ := newService(domain.StatusPending)

	_, err := svc.GetByID(context.Background(), 2, 1)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel(t *testing.T) {
	svc, repo := newService(domain.StatusPending)

	resp, err := svc.Cancel(context.Background(), 1, 1, &models.CancelBookingRequest{CancellationReason: ptr.Ptr("клиент передумал")})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "клиент передумал", *resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
}

func TestCancel_TerminalGuard(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			svc, repo := newService(status)

			_, err := svc.Cancel(context.Background(), 1, 1, &models.CancelBookingRequest{})

			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, status, repo.bookings[1].Status)
		})
	}
}

func TestCancel_ReasonTooLong(t *testing.T) {
	svc, _ := newService(domain.StatusPending)
	long := make([]rune, domain.MaxCancellationReasonLength+1)
	for i := range long {
		long[i] = 'я'
	}

	_, err := svc.Cancel(context.Background(), 1, 1, &models.CancelBookingRequest{CancellationReason: ptr.Ptr(string(long))})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		from       domain.BookingStatus
		req        models.UpdateStatusRequest
		wantErr    error
		wantStatus domain.BookingStatus
	}{
		{
			name:       "в работу",
			from:       domain.StatusPending,
			req:        models.UpdateStatusRequest{Status: "in_progress", IsPrivileged: true},
			wantStatus: domain.StatusInProgress,
		},
		{
			name:       "завершение",
			from:       domain.StatusInProgress,
			req:        models.UpdateStatusRequest{Status: "completed", IsPrivileged: true},
			wantStatus: domain.StatusCompleted,
		},
		{
			name:       "нельзя завершить без работы",
			from:       domain.StatusPending,
			req:        models.UpdateStatusRequest{Status: "completed", IsPrivileged: true},
			wantErr:    ErrInvalidTransition,
			wantStatus: domain.StatusPending,
		},
		{
			name:       "не сотрудник",
			from:       domain.StatusPending,
			req:        models.UpdateStatusRequest{Status: "in_progress"},
			wantErr:    ErrAccessDenied,
			wantStatus: domain.StatusPending,
		},
		{
			name:       "неизвестный статус",
			from:       domain.StatusPending,
			req:        models.UpdateStatusRequest{Status: "confirmed", IsPrivileged: true},
			wantErr:    ErrInvalidStatus,
			wantStatus: domain.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(tt.from)
			req := tt.req

			resp, err := svc.UpdateStatus(context.Background(), 1, 1, &req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, string(tt.wantStatus), resp.Status)
			}
			assert.Equal(t, tt.wantStatus, repo.bookings[1].Status)
		})
	}
}

func TestUpdateStatus_RepositoryError(t *testing.T) {
	svc, repo := newService(domain.StatusPending)
	repo.updateErr = errors.New("connection reset")

	_, err := svc.UpdateStatus(context.Background(), 1, 1, &models.UpdateStatusRequest{Status: "in_progress", IsPrivileged: true})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestListWorkshopBookings(t *testing.T) {
	svc, repo := newService(domain.StatusPending)
	repo.bookings[2] = &domain.Booking{ID: 2, DealershipID: 1, WorkshopID: 10,
		BookingDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), StartTime: "11:00", Status: domain.StatusCancelled}
	repo.bookings[3] = &domain.Booking{ID: 3, DealershipID: 2, WorkshopID: 10,
		BookingDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), StartTime: "12:00", Status: domain.StatusPending}

	resp, err := svc.ListWorkshopBookings(context.Background(), 1, &models.ListWorkshopBookingsRequest{
		WorkshopID:   10,
		Date:         "2025-06-02",
		IsPrivileged: true,
	})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
}

func TestListWorkshopBookings_Errors(t *testing.T) {
	svc, repo := newService(domain.StatusPending)

	_, err := svc.ListWorkshopBookings(context.Background(), 1, &models.ListWorkshopBookingsRequest{WorkshopID: 10, Date: "2025-06-02"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ListWorkshopBookings(context.Background(), 1, &models.ListWorkshopBookingsRequest{
		WorkshopID: 10, Date: "02.06.2025", IsPrivileged: true,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.listErr = errors.New("connection reset")
	_, err = svc.ListWorkshopBookings(context.Background(), 1, &models.ListWorkshopBookingsRequest{
		WorkshopID: 10, Date: "2025-06-02", IsPrivileged: true,
	})
	assert.ErrorIs(t, err, ErrInternal)
}
