package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

// Success reports whether status is a 2xx code.
func Success(status int) bool {
	return status >= 200 && status < 300
}

// DecodeResponse closes resp.Body, checks for a 2xx status and decodes the
// JSON body into target when target is non-nil. Failures are RemoteErrors
// tagged with operation.
func DecodeResponse(resp *http.Response, operation string, target any) error {
	defer func() {
		_ = resp.Body.Close()
	}()

	endpoint := ""
	if resp.Request != nil && resp.Request.URL != nil {
		endpoint = resp.Request.URL.Path
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapRemote(operation, endpoint, errors.WrapIO("read", "response body", err))
	}

	if !Success(resp.StatusCode) {
		return errors.NewRemoteError(operation, endpoint, resp.StatusCode, errorMessage(resp.StatusCode, body))
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapRemote(operation, endpoint, errors.WrapParse("json", "response", err))
	}
	return nil
}

// errorMessage picks a readable message out of an error response.
func errorMessage(status int, body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return msg
}
