package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorKind string

const (
	ErrorKindUnauthenticated ErrorKind = "unauthenticated"
	ErrorKindForbidden       ErrorKind = "forbidden"
	ErrorKindHTTP            ErrorKind = "http"
	ErrorKindTimeout         ErrorKind = "timeout"
	ErrorKindNetwork         ErrorKind = "network"
	ErrorKindInvalidResponse ErrorKind = "invalid_response"
)

const (
	StatusNetworkError = 0

	MessageUnauthenticated = "Authentication required"
	MessageForbidden       = "Access forbidden. Please verify your API token has the required permissions."
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrHTTP            = errors.New("http error")
	ErrTimeout         = errors.New("request timeout")
	ErrNetwork         = errors.New("network error")
	ErrInvalidResponse = errors.New("invalid response")

	kindSentinels = map[ErrorKind]error{
		ErrorKindUnauthenticated: ErrUnauthenticated,
		ErrorKindForbidden:       ErrForbidden,
		ErrorKindHTTP:            ErrHTTP,
		ErrorKindTimeout:         ErrTimeout,
		ErrorKindNetwork:         ErrNetwork,
		ErrorKindInvalidResponse: ErrInvalidResponse,
	}
)

// APIError is the classified failure of an outbound call.
// Status is 0 for failures without an HTTP response.
type APIError struct {
	Kind    ErrorKind
	Message string
	Status  int
	Code    string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

func NewAPIError(kind ErrorKind, status int, message string) *APIError {
	return &APIError{
		Kind:    kind,
		Message: message,
		Status:  status,
	}
}

func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrForbidden)
}

func classifyStatus(status int, statusLine string, body []byte) *APIError {
	message, code := extractErrorDetails(body)

	var apiErr *APIError
	switch status {
	case http.StatusUnauthorized:
		apiErr = NewAPIError(ErrorKindUnauthenticated, status, MessageUnauthenticated)
	case http.StatusForbidden:
		apiErr = NewAPIError(ErrorKindForbidden, status, MessageForbidden)
	default:
		if message == "" {
			message = fmt.Sprintf("HTTP %d: %s", status, statusText(status, statusLine))
		}
		apiErr = NewAPIError(ErrorKindHTTP, status, message)
	}

	apiErr.Code = code
	return apiErr
}

type errorBody struct {
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
	Code    string          `json:"code"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func extractErrorDetails(body []byte) (message, code string) {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", ""
	}

	code = parsed.Code
	if parsed.Error != nil && parsed.Error.Code != "" {
		code = parsed.Error.Code
	}

	switch {
	case parsed.Message != "":
		message = parsed.Message
	case len(parsed.Detail) > 0:
		message = parseDetail(parsed.Detail)
	}
	if message == "" && parsed.Error != nil {
		message = parsed.Error.Message
	}

	return message, code
}

// parseDetail accepts both a plain string and a list of validation entries.
func parseDetail(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	var entries []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return ""
	}

	messages := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Msg != "" {
			messages = append(messages, entry.Msg)
		}
	}

	return strings.Join(messages, "; ")
}

func statusText(status int, statusLine string) string {
	text := strings.TrimSpace(strings.TrimPrefix(statusLine, fmt.Sprintf("%d", status)))
	if text != "" {
		return text
	}

	return http.StatusText(status)
}
