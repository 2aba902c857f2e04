package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/chedi-ouerghi/shop-mobilenative/pkg/errors"
)

// downstreamError matches the error envelope our own handlers emit, so errors
// from sibling services round-trip with their code and message intact.
type downstreamError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError turns a non-2xx response from a collaborator into an
// error. Structured envelope bodies keep their code and message; anything
// else becomes a generic error carrying the status and raw body. The body is
// consumed and closed.
func ParseResponseError(resp *http.Response, service string) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (read body: %w)", service, resp.StatusCode, err)
	}

	var de downstreamError
	if json.Unmarshal(raw, &de) == nil && de.Error != nil {
		return translate(resp.StatusCode, de.Error.Code, de.Error.Message, service)
	}
	return fmt.Errorf("%s returned status %d: %s", service, resp.StatusCode, raw)
}

func translate(status int, code, message, service string) error {
	qualified := fmt.Sprintf("%s: %s", service, message)
	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(service, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusServiceUnavailable:
		return &apperrors.AppError{
			Code:    code,
			Message: qualified,
			Status:  http.StatusServiceUnavailable,
			Err:     apperrors.ErrUnavailable,
		}
	case status >= 500:
		return fmt.Errorf("%s server error (%d/%s): %s", service, status, code, message)
	default:
		return &apperrors.AppError{Code: code, Message: qualified, Status: status}
	}
}
