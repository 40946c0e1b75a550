package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// maxErrorBody caps how much of a response body is copied into an error.
const maxErrorBody = 256

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusGone:                ErrGone,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
	http.StatusInternalServerError: ErrInternalServerError,
}

// mapHTTPError turns a non-2xx response into a sentinel error carrying the
// server's message. Unknown statuses keep their code in the message.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	if body == "" {
		body = http.StatusText(status)
	}

	if sentinel, ok := statusErrors[status]; ok {
		return fmt.Errorf("%w: %s", sentinel, body)
	}
	return fmt.Errorf("http %d: %s", status, body)
}
