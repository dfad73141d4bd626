package wifi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotSupported     = errors.New("not supported")
	ErrNotFound         = errors.New("not found")
	ErrNotAvailable     = errors.New("not available")
	ErrPermission       = errors.New("permission denied")
	ErrOperationFailed  = errors.New("operation failed")
	ErrWirelessDisabled = errors.New("wireless is disabled")
	ErrInvalidQuery     = errors.New("invalid query")
)

// ScanError is returned by a Scanner when the underlying scan facility
// fails. Output holds whatever diagnostic text the facility produced.
type ScanError struct {
	Backend   string
	Interface string
	Output    string
	Err       error
}

func (e *ScanError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s scan on %s failed", e.Backend, e.Interface)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		fmt.Fprintf(&b, ": %s", out)
	}
	return b.String()
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
