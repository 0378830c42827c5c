package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"
)

const (
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"

	contentTypeJSON = "application/json"
)

type (
	// BearerTokenProvider is read once at the start of a call.
	BearerTokenProvider func(context.Context) (string, bool)

	CallOption func(*call)

	call struct {
		body        any
		headers     map[string]string
		query       map[string]string
		timeout     time.Duration
		bearerToken BearerTokenProvider
	}
)

func WithBody(body any) CallOption {
	return func(c *call) {
		c.body = body
	}
}

func WithHeader(key, value string) CallOption {
	return func(c *call) {
		c.headers[key] = value
	}
}

func WithQueryParameter(key, value string) CallOption {
	return func(c *call) {
		c.query[key] = value
	}
}

func WithTimeout(timeout time.Duration) CallOption {
	return func(c *call) {
		c.timeout = timeout
	}
}

func WithBearerToken(provider BearerTokenProvider) CallOption {
	return func(c *call) {
		c.bearerToken = provider
	}
}

// Do performs one outbound call and converts its outcome either into T or into *APIError.
func Do[T any](ctx context.Context, client Client, method, path string, opts ...CallOption) (T, error) {
	var result T

	c := call{
		headers: make(map[string]string),
		query:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(&c)
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := client.NewRequest(callCtx).
		SetHeader(headerContentType, contentTypeJSON).
		SetHeaders(c.headers).
		SetQueryParams(c.query)

	if c.bearerToken != nil {
		if token, ok := c.bearerToken(ctx); ok && token != "" {
			req.SetHeader(headerAuthorization, "Bearer "+token)
		}
	}
	if c.body != nil {
		req.SetBody(c.body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return result, transportError(ctx, callCtx, c.timeout, err)
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return result, classifyStatus(status, resp.Status(), resp.Body())
	}

	body := resp.Body()
	if status == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return result, nil
	}

	err = decodeBody(&result, resp.Header().Get(headerContentType), body)
	if err != nil {
		return result, &APIError{
			Kind:    ErrorKindInvalidResponse,
			Message: fmt.Sprintf("invalid response body: %s", err.Error()),
			Status:  status,
			Err:     err,
		}
	}

	return result, nil
}

func transportError(parentCtx, callCtx context.Context, timeout time.Duration, err error) *APIError {
	if timeout > 0 && parentCtx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return &APIError{
			Kind:    ErrorKindTimeout,
			Message: fmt.Sprintf("Request timeout after %s", timeout),
			Status:  http.StatusRequestTimeout,
			Err:     err,
		}
	}

	return &APIError{
		Kind:    ErrorKindNetwork,
		Message: err.Error(),
		Status:  StatusNetworkError,
		Err:     err,
	}
}

func decodeBody[T any](result *T, contentType string, body []byte) error {
	if raw, ok := any(result).(*[]byte); ok {
		*raw = body
		return nil
	}

	if isJSONContentType(contentType) {
		return json.Unmarshal(body, result)
	}

	switch target := any(result).(type) {
	case *string:
		*target = string(body)
	case *any:
		*target = string(body)
	default:
		return fmt.Errorf("unexpected content type %q", contentType)
	}

	return nil
}

func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == contentTypeJSON || strings.HasSuffix(mediaType, "+json")
}
