package edit_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ID <= 0 {
		return fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}

	// Интервал меняется только целиком
	if (req.StartAt == nil) != (req.EndAt == nil) {
		return fmt.Errorf("%w: startAt and endAt must be provided together", ErrInvalidInput)
	}

	if req.StartAt != nil && !req.EndAt.After(*req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}

	if req.CustomerName != nil {
		if *req.CustomerName == "" {
			return fmt.Errorf("%w: customer name must not be empty", ErrInvalidInput)
		}
		if len(*req.CustomerName) > domain.MaxCustomerNameLength {
			return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
		}
	}

	if req.CustomerPhone != nil && *req.CustomerPhone == "" {
		return fmt.Errorf("%w: customer phone must not be empty", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long (max %d)", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.PaymentStatus != nil {
		switch domain.PaymentStatus(*req.PaymentStatus) {
		case domain.PaymentPaid, domain.PaymentUnpaid:
		default:
			return fmt.Errorf("%w: invalid payment status %q", ErrInvalidInput, *req.PaymentStatus)
		}
	}

	if req.CustomTotalPrice != nil && *req.CustomTotalPrice < 0 {
		return fmt.Errorf("%w: custom price must be non-negative", ErrInvalidInput)
	}

	if req.PriceOptions.Guests < 0 || req.PriceOptions.Controllers < 0 {
		return fmt.Errorf("%w: price options must be non-negative", ErrInvalidInput)
	}

	return nil
}
