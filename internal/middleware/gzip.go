package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

// minGzipSize задаёт размер ответа, начиная с которого он сжимается
const minGzipSize = 1400

// compressibleTypes перечисляет типы содержимого, которые имеет смысл сжимать
var compressibleTypes = []string{"application/json", "text/csv", "text/html", "text/plain"}

// GzipMiddleware обрабатывает Gzip-сжатие для запросов и ответов
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Обработка сжатого запроса
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			gz, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}
			defer gz.Close()
			r.Body = io.NopCloser(gz)
		}

		// Проверка, поддерживает ли клиент сжатие ответа
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gw := &gzipResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		defer gw.Close()

		next.ServeHTTP(gw, r)
	})
}

// gzipResponseWriter оборачивает http.ResponseWriter для сжатия ответа.
// Решение о сжатии принимается при первой записи тела.
type gzipResponseWriter struct {
	http.ResponseWriter
	gz          *gzip.Writer
	statusCode  int
	wroteHeader bool
	decided     bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.statusCode = statusCode
	w.wroteHeader = true
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.decided {
		w.decided = true
		if isCompressible(w.Header().Get("Content-Type")) && len(b) >= minGzipSize {
			w.Header().Set("Content-Encoding", "gzip")
			w.Header().Del("Content-Length")
			w.gz = gzip.NewWriter(w.ResponseWriter)
		}
		w.ResponseWriter.WriteHeader(w.statusCode)
	}
	if w.gz != nil {
		return w.gz.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// Close завершает gzip-поток и отправляет заголовок, если тело не было записано
func (w *gzipResponseWriter) Close() error {
	if !w.decided {
		w.decided = true
		w.ResponseWriter.WriteHeader(w.statusCode)
	}
	if w.gz != nil {
		return w.gz.Close()
	}
	return nil
}

func isCompressible(contentType string) bool {
	for _, t := range compressibleTypes {
		if strings.HasPrefix(contentType, t) {
			return true
		}
	}
	return false
}
