package autocomplete

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrEmptyQuery is returned when Fetch is called without a query.
var ErrEmptyQuery = errors.New("empty autocomplete query")

// StatusError reports a non-2xx response from the autocomplete endpoint.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status != "" {
		return fmt.Sprintf("autocomplete request failed: %s", e.Status)
	}
	return fmt.Sprintf("autocomplete request failed: status %d", e.StatusCode)
}

// IsCanceled reports whether err is the result of the caller cancelling the
// request. Cancelled requests are not failures; timeouts are.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
