package http

import (
	"context"
	"net/http"
)

type contextKey int

const handlerMetaContextKey contextKey = iota

type Panic struct {
	Message    string
	Stacktrace []byte
}

type handlerMetadata struct {
	Code  int
	Panic *Panic
	Error error
}

type statusRecorder struct {
	http.ResponseWriter
	meta *handlerMetadata
}

func (w *statusRecorder) WriteHeader(code int) {
	w.meta.Code = code
	w.ResponseWriter.WriteHeader(code)
}

func withHandlerMetadata(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta := &handlerMetadata{Code: http.StatusOK}
		ctx := context.WithValue(r.Context(), handlerMetaContextKey, meta)
		handler.ServeHTTP(&statusRecorder{ResponseWriter: w, meta: meta}, r.WithContext(ctx))
	})
}

func getHandlerMetadata(ctx context.Context) *handlerMetadata {
	meta, ok := ctx.Value(handlerMetaContextKey).(*handlerMetadata)
	if ok {
		return meta
	}
	return &handlerMetadata{}
}
