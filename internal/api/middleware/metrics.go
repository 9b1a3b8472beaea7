package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// HTTPMetrics интерфейс записи метрик HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// statusWriter запоминает код ответа
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Metrics записывает количество и длительность запросов по шаблону маршрута
func Metrics(m HTTPMetrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			writer := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(writer, r)

			m.ObserveHTTPRequest(r.Method, routeTemplate(r), writer.status, time.Since(start))
		})
	}
}

// Logging пишет строку access-лога на каждый запрос
func Logging(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			writer := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(writer, r)

			format := "%s %s - status=%d duration_ms=%d request_id=%s"
			args := []interface{}{r.Method, r.URL.Path, writer.status, time.Since(start).Milliseconds(), GetRequestID(r.Context())}
			if writer.status >= http.StatusInternalServerError {
				log.Error(format, args...)
				return
			}
			log.Info(format, args...)
		})
	}
}

// routeTemplate возвращает шаблон маршрута, чтобы ID в пути не раздували кардинальность меток
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
