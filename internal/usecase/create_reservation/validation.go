package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if len(req.StationIDs) == 0 {
		return fmt.Errorf("%w: at least one station is required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(req.StationIDs))
	for _, id := range req.StationIDs {
		if id == "" {
			return fmt.Errorf("%w: station id must not be empty", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate station id %q", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	// Нулевая и отрицательная длительность отклоняются на создании
	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}

	// Бронирование целиком в прошлом не имеет смысла
	// (начало в прошлом допустимо: walk-in сессия стартует "сейчас")
	if !req.EndAt.After(now) {
		return fmt.Errorf("%w: reservation interval is entirely in the past", ErrInvalidInput)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	if req.CustomerPhone == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long (max %d)", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.PriceOptions.Guests < 0 || req.PriceOptions.Controllers < 0 {
		return fmt.Errorf("%w: price options must be non-negative", ErrInvalidInput)
	}

	return nil
}
