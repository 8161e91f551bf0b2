package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
	directoryRepo "github.com/m04kA/SMC-WorkshopBooking/internal/infra/storage/directory"
	"github.com/m04kA/SMC-WorkshopBooking/internal/integrations/tenantservice"
	"github.com/m04kA/SMC-WorkshopBooking/internal/service/resolver"
)

// findClient ищет клиента дилера по ID, а без ID по телефону
func (uc *UseCase) findClient(ctx context.Context, req *Request) (*domain.Client, error) {
	var (
		client *domain.Client
		err    error
	)
	if req.ClientID != nil {
		client, err = uc.directory.GetClient(ctx, req.DealershipID, *req.ClientID)
	} else {
		client, err = uc.directory.GetClientByPhone(ctx, req.DealershipID, *req.Phone)
	}

	if err != nil {
		if errors.Is(err, directoryRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateBooking: client not found in dealership=%d", req.DealershipID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get client: %v", err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	return client, nil
}

func (uc *UseCase) checkVehicle(ctx context.Context, client *domain.Client, vehicleID int64) error {
	vehicle, err := uc.directory.GetVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrVehicleNotFound) {
			uc.logger.Warn("CreateBooking: vehicle id=%d not found", vehicleID)
			return fmt.Errorf("%w: vehicle id=%d not found", ErrVehicleNotOwned, vehicleID)
		}
		uc.logger.Error("CreateBooking: failed to get vehicle id=%d: %v", vehicleID, err)
		return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	if vehicle.ClientID != client.ID {
		uc.logger.Warn("CreateBooking: vehicle id=%d belongs to client=%d, not %d", vehicleID, vehicle.ClientID, client.ID)
		return ErrVehicleNotOwned
	}

	return nil
}

func (uc *UseCase) checkTechnician(ctx context.Context, sc domain.SchedulingContext, technicianID int64) error {
	technician, err := uc.directory.GetTechnician(ctx, sc.DealershipID, technicianID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrTechnicianNotFound) {
			uc.logger.Warn("CreateBooking: technician id=%d not found in dealership=%d", technicianID, sc.DealershipID)
			return ErrTechnicianUnavailable
		}
		uc.logger.Error("CreateBooking: failed to get technician id=%d: %v", technicianID, err)
		return fmt.Errorf("%w: failed to get technician: %v", ErrInternal, err)
	}

	if !technician.IsActive || technician.WorkshopID != sc.WorkshopID {
		uc.logger.Warn("CreateBooking: technician id=%d unavailable for workshop=%d", technicianID, sc.WorkshopID)
		return ErrTechnicianUnavailable
	}

	return nil
}

func (uc *UseCase) mapTenantError(dealershipID int64, err error) error {
	if errors.Is(err, tenantservice.ErrWorkshopNotFound) {
		uc.logger.Warn("CreateBooking: workshop not found for dealership=%d", dealershipID)
		return ErrWorkshopNotFound
	}
	uc.logger.Error("CreateBooking: failed to resolve workshop for dealership=%d: %v", dealershipID, err)
	return fmt.Errorf("%w: failed to resolve workshop: %v", ErrInternal, err)
}

func (uc *UseCase) mapResolveError(err error) error {
	switch {
	case errors.Is(err, resolver.ErrNotConfigured):
		uc.logger.Warn("CreateBooking: %v", err)
		return ErrNotConfigured
	case errors.Is(err, resolver.ErrServiceNotFound):
		uc.logger.Warn("CreateBooking: %v", err)
		return ErrServiceNotFound
	case errors.Is(err, resolver.ErrInvalidDate):
		uc.logger.Warn("CreateBooking: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, resolver.ErrInvalidConfiguration):
		uc.logger.Error("CreateBooking: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	uc.logger.Error("CreateBooking: failed to resolve context: %v", err)
	return fmt.Errorf("%w: failed to resolve context: %v", ErrInternal, err)
}
