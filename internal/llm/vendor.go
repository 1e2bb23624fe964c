package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// resolveModel maps a friendly model name to a vendor model ID. Unknown
// names are used as-is.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}

// requireKey rejects an empty API key for the named vendor.
func requireKey(vendor, key string) error {
	if key == "" {
		return fmt.Errorf("%s API key is required", vendor)
	}
	return nil
}

// mapVendorError classifies a failed vendor call. status is the HTTP status
// of the vendor's error reply, or 0 when no reply arrived. Only 429, 5xx and
// network failures are retryable; other 4xx replies mean the request itself
// was refused and would be refused again.
func mapVendorError(status int, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status >= 400 && status < 500:
		return &ErrRequestRejected{Status: status, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}
