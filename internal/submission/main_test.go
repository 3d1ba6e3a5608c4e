package submission

import (
	"testing"

	"go.uber.org/goleak"
)

// Every dispatch goroutine must be gone once Wait returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
