package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"pixrelay/infra/metrics"
	"pixrelay/internal/eventlog"
)

type fixture struct {
	echo    *echo.Echo
	sink    *eventlog.MemorySink
	metrics *metrics.Metrics
	logs    *observer.ObservedLogs
}

func newFixture() fixture {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)
	sink := eventlog.NewMemorySink()
	events := eventlog.NewLogger(sink, log)
	m := metrics.NewMetrics(prometheus.NewRegistry())

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(events, log, m)
	e.Use(RequestLogger(log))
	e.Use(RecoverFatal(events, log, m))
	e.POST("/panic", func(c echo.Context) error {
		panic("nil map write in mapper")
	})
	e.POST("/fail", func(c echo.Context) error {
		return errors.New("pq: connection refused")
	})
	e.POST("/ok", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	return fixture{echo: e, sink: sink, metrics: m, logs: logs}
}

func (f fixture) do(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func TestRecoverFatalAnswersGenericError(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/panic")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"Internal server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "nil map")

	fatal := f.sink.ByKind(eventlog.KindFatal)
	require.Len(t, fatal, 1)
	assert.Equal(t, "panic: nil map write in mapper", fatal[0].Data.(map[string]any)["error"])
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Requests.WithLabelValues(metrics.OutcomeFatal)))
}

func TestErrorHandlerHidesUnexpectedErrors(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/fail")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"Internal server error"}`, rec.Body.String())

	fatal := f.sink.ByKind(eventlog.KindFatal)
	require.Len(t, fatal, 1)
	data := fatal[0].Data.(map[string]any)
	assert.Equal(t, "pq: connection refused", data["error"])
	assert.Equal(t, "/fail", data["path"])
}

func TestErrorHandlerKeepsRoutingErrors(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"Not Found"}`, rec.Body.String())
	assert.Empty(t, f.sink.ByKind(eventlog.KindFatal))
}

func TestRequestLoggerWritesOneEntryPerRequest(t *testing.T) {
	f := newFixture()

	f.do(http.MethodPost, "/ok")

	entries := f.logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/ok", fields["uri"])
	assert.Equal(t, int64(http.StatusNoContent), fields["status"])
}
