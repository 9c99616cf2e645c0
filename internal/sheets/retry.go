package sheets

import (
	"context"
	"errors"
	"net/http"

	"coc_war_stats/internal/config"

	"google.golang.org/api/googleapi"
)

// withRetry retries op on quota and server errors from the Sheets API
func withRetry(ctx context.Context, rc config.RetryConfig, operation string, op func(ctx context.Context) error) error {
	return config.Retry(ctx, rc, operation, isRetryable, op)
}

func isRetryable(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
}
