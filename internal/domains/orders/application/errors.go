package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyID) ||
		errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeQuantity) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidDate) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
