package dialogue

import (
	"context"
	"errors"
	"fmt"
)

const bookingIDAttempts = 20

var ErrBookingIDExhausted = errors.New("no unused booking id available")

// newBookingID returns "YYYYMMDD-DDD" for today in the engine's timezone
// with a suffix in [100, 999] that no stored booking carries.
func (e *Engine) newBookingID(ctx context.Context) (string, error) {
	datePart := e.now().Format("20060102")
	for i := 0; i < bookingIDAttempts; i++ {
		id := fmt.Sprintf("%s-%d", datePart, 100+e.Intn(900))
		exists, err := e.Gateway.BookingIDExists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("check booking id: %w", err)
		}
		if !exists {
			return id, nil
		}
	}
	return "", ErrBookingIDExhausted
}
