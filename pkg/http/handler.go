package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
)

type (
	HandlerFunc func(w ResponseWriter, r *http.Request) error

	Handler interface {
		Method() string
		Path() string
		HTTPHandler() HandlerFunc
	}

	ResponseWriter interface {
		SetHeader(key, value string) ResponseWriter
		SetStatusCode(httpCode int) ResponseWriter
		SetCookie(cookie *http.Cookie) ResponseWriter
		SetJSONBody(data any) ResponseWriter
		SetHTMLBody(render func(io.Writer) error) ResponseWriter
		Redirect(location string, httpCode int) ResponseWriter
	}
)

type responseWriter struct {
	impl http.ResponseWriter

	contentType string
	renderBody  func(io.Writer) error
	httpCode    int
}

func (w *responseWriter) SetHeader(key, value string) ResponseWriter {
	w.impl.Header().Set(key, value)
	return w
}

func (w *responseWriter) SetStatusCode(httpCode int) ResponseWriter {
	w.httpCode = httpCode
	return w
}

func (w *responseWriter) SetCookie(cookie *http.Cookie) ResponseWriter {
	http.SetCookie(w.impl, cookie)
	return w
}

func (w *responseWriter) SetJSONBody(data any) ResponseWriter {
	w.contentType = contentTypeJSON
	w.renderBody = func(out io.Writer) error {
		return json.NewEncoder(out).Encode(data)
	}
	return w
}

func (w *responseWriter) SetHTMLBody(render func(io.Writer) error) ResponseWriter {
	w.contentType = contentTypeHTML
	w.renderBody = render
	return w
}

func (w *responseWriter) Redirect(location string, httpCode int) ResponseWriter {
	w.impl.Header().Set("Location", location)
	w.httpCode = httpCode
	w.renderBody = nil
	return w
}

func (w *responseWriter) Write(ctx context.Context, err error) {
	meta := getHandlerMetadata(ctx)
	meta.Error = err

	switch {
	case errors.Is(err, ErrParsingError):
		w.impl.WriteHeader(http.StatusBadRequest)
		return
	case err != nil:
		w.impl.WriteHeader(http.StatusInternalServerError)
		return
	case w.renderBody == nil:
		w.impl.WriteHeader(w.httpCode)
		return
	}

	var body bytes.Buffer
	if renderErr := w.renderBody(&body); renderErr != nil {
		meta.Error = fmt.Errorf("render body: %w", renderErr)
		w.impl.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.impl.Header().Set(headerContentType, w.contentType)
	w.impl.WriteHeader(w.httpCode)
	_, writeErr := w.impl.Write(body.Bytes())
	if writeErr != nil {
		meta.Error = fmt.Errorf("write body: %w", writeErr)
	}
}

func (w *responseWriter) WritePanic(ctx context.Context, p Panic) {
	meta := getHandlerMetadata(ctx)
	meta.Panic = &p

	w.impl.WriteHeader(http.StatusInternalServerError)
}

func httpHandlerWrapper(handler HandlerFunc) http.HandlerFunc {
	recoverPanic := func(r *http.Request, respWriter *responseWriter) {
		msg := recover()
		if msg == nil {
			return
		}

		respWriter.WritePanic(r.Context(), Panic{
			Message:    fmt.Sprintf("%v", msg),
			Stacktrace: debug.Stack(),
		})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		respWriter := &responseWriter{
			impl:     w,
			httpCode: http.StatusOK,
		}

		defer recoverPanic(r, respWriter)
		err := handler(respWriter, r)
		respWriter.Write(r.Context(), err)
	}
}
