package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/neuraops/dashboard/pkg/strings"
)

type (
	DataExtractor[T any] func(dataProvider) (T, error)

	dataProvider interface {
		PathParameters() map[string]string
		QueryParameters() url.Values
		FormValues() url.Values
		Header() http.Header
		Cookies() []*http.Cookie
		Body() io.ReadCloser
	}

	requestDataProvider struct {
		*http.Request
	}
)

var ErrParsingError = errors.New("parsing error")

func ParseRequest[T any](r *http.Request, extractor DataExtractor[T], lastErr error) (T, error) {
	if lastErr != nil {
		var result T
		return result, lastErr
	}

	return extractor(requestDataProvider{r})
}

func ParseRequestOptional[T any](r *http.Request, extractor DataExtractor[T], lastErr error) *T {
	if lastErr != nil {
		return nil
	}

	result, err := extractor(requestDataProvider{r})
	if err != nil {
		return nil
	}

	return &result
}

func PathParameter[T strings.SupportedValueParsingTypes](param string) DataExtractor[T] {
	return func(p dataProvider) (T, error) {
		paramValue, ok := p.PathParameters()[param]
		if !ok {
			var result T
			return result, fmt.Errorf("%w: path parameter %s not found", ErrParsingError, param)
		}

		return parseTypedValueImpl[T](paramValue)
	}
}

func QueryParameter[T strings.SupportedValueParsingTypes](param string) DataExtractor[T] {
	return func(p dataProvider) (T, error) {
		value := p.QueryParameters().Get(param)
		if value == "" {
			var result T
			return result, fmt.Errorf("%w: query parameter %s not found", ErrParsingError, param)
		}

		return parseTypedValueImpl[T](value)
	}
}

func FormValue[T strings.SupportedValueParsingTypes](param string) DataExtractor[T] {
	return func(p dataProvider) (T, error) {
		value := p.FormValues().Get(param)
		if value == "" {
			var result T
			return result, fmt.Errorf("%w: form value %s not found", ErrParsingError, param)
		}

		return parseTypedValueImpl[T](value)
	}
}

func Header[T strings.SupportedValueParsingTypes](key string) DataExtractor[T] {
	return func(p dataProvider) (T, error) {
		header := p.Header().Get(key)
		if header == "" {
			var result T
			return result, fmt.Errorf("%w: header with key %s not found", ErrParsingError, key)
		}

		return parseTypedValueImpl[T](header)
	}
}

func Cookie(name string) DataExtractor[*http.Cookie] {
	return func(p dataProvider) (*http.Cookie, error) {
		var cookie *http.Cookie
		for _, c := range p.Cookies() {
			if c.Name == name {
				cookie = c
			}
		}
		if cookie != nil {
			return cookie, nil
		}

		return nil, fmt.Errorf("%w: cookie with name %s not found", ErrParsingError, name)
	}
}

func CookieValue[T strings.SupportedValueParsingTypes](name string) DataExtractor[T] {
	return func(p dataProvider) (T, error) {
		cookie, err := Cookie(name)(p)
		if err != nil {
			var result T
			return result, err
		}

		return parseTypedValueImpl[T](cookie.Value)
	}
}

func JSONBody[T any]() DataExtractor[T] {
	return func(p dataProvider) (T, error) {
		var result T
		err := json.NewDecoder(p.Body()).Decode(&result)
		if err != nil {
			return result, fmt.Errorf("%w: decode json body: %w", ErrParsingError, err)
		}

		return result, nil
	}
}

func (p requestDataProvider) PathParameters() map[string]string {
	return mux.Vars(p.Request)
}

func (p requestDataProvider) QueryParameters() url.Values {
	return p.Request.URL.Query()
}

func (p requestDataProvider) FormValues() url.Values {
	if err := p.Request.ParseForm(); err != nil {
		return url.Values{}
	}

	return p.Request.PostForm
}

func (p requestDataProvider) Header() http.Header {
	return p.Request.Header
}

func (p requestDataProvider) Body() io.ReadCloser {
	return p.Request.Body
}

func parseTypedValueImpl[T strings.SupportedValueParsingTypes](value string) (T, error) {
	v, err := strings.ParseTypedValue[T](value)
	if err == nil {
		return v, nil
	}

	return v, fmt.Errorf("%w: %w", ErrParsingError, err)
}
