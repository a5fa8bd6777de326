package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

// Ответы меньше этого размера не сжимаются
const gzipMinSize = 1400

// GzipMiddleware распаковывает сжатые запросы и сжимает подходящие ответы
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			gz, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}
			defer gz.Close()
			r.Body = io.NopCloser(gz)
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gw := &gzipResponseWriter{ResponseWriter: w}
		defer gw.Close()

		next.ServeHTTP(gw, r)
	})
}

// gzipResponseWriter оборачивает http.ResponseWriter для сжатия ответа.
// Сжимаются только JSON и HTML ответы достаточного размера.
type gzipResponseWriter struct {
	http.ResponseWriter
	gz *gzip.Writer
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if w.gz == nil {
		contentType := w.Header().Get("Content-Type")
		compressible := strings.HasPrefix(contentType, "application/json") ||
			strings.HasPrefix(contentType, "text/html")
		if !compressible || len(b) < gzipMinSize {
			return w.ResponseWriter.Write(b)
		}
		w.Header().Set("Content-Encoding", "gzip")
		w.gz = gzip.NewWriter(w.ResponseWriter)
	}
	return w.gz.Write(b)
}

// Close закрывает gzip.Writer, если сжатие было включено
func (w *gzipResponseWriter) Close() error {
	if w.gz == nil {
		return nil
	}
	return w.gz.Close()
}
