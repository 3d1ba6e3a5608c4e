package cart

import (
	"errors"
	"fmt"
)

var (
	ErrLimitReached = errors.New("order limit reached")
	ErrInvalidItem  = errors.New("invalid item")
)

// LimitReachedMessage is the advisory shown when an add is rejected.
const LimitReachedMessage = "This item has reached its order limit for the week."

type LimitReachedError struct {
	ProductID string
	Count     int
	Limit     int
}

func (e *LimitReachedError) Error() string {
	return fmt.Sprintf("product %s: %d of %d ordered this week: %s", e.ProductID, e.Count, e.Limit, ErrLimitReached)
}

func (e *LimitReachedError) Unwrap() error { return ErrLimitReached }
