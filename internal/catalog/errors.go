package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNotFound marks a lookup for an unknown product or review id.
var ErrNotFound = errors.New("not found")

// ValidationError reports input rejected either locally or by the API.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// apiMessage is the error body shape the API uses for rejections.
type apiMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// statusError maps an HTTP error response to the package error taxonomy.
// The body is read best-effort for a human-readable message.
func statusError(path string, resp *http.Response) error {
	var msg apiMessage
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		_ = json.Unmarshal(body, &msg)
	}
	detail := msg.Message
	if detail == "" {
		detail = msg.Error
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		if detail != "" {
			return fmt.Errorf("%s: %s: %w", path, detail, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if detail == "" {
			detail = fmt.Sprintf("api %s rejected request (status %d)", path, resp.StatusCode)
		}
		return &ValidationError{Msg: detail}
	default:
		if detail != "" {
			return fmt.Errorf("api %s returned status %d: %s", path, resp.StatusCode, detail)
		}
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
}
