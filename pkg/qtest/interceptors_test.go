package qtest_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	messages []string
	fields   []map[string]interface{}
}

func (l *recordingLogger) record(msg string, fields map[string]interface{}) {
	l.messages = append(l.messages, msg)
	l.fields = append(l.fields, fields)
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.record(msg, fields) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.record(msg, fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.record(msg, fields) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.record(msg, fields) }

func TestInterceptorChain_RequestInterceptors(t *testing.T) {
	chain := qtest.NewInterceptorChain()
	ctx := context.Background()

	var executionOrder []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *qtest.Request) error {
		executionOrder = append(executionOrder, "first")

		return nil
	})

	chain.AddRequestInterceptor(func(ctx context.Context, req *qtest.Request) error {
		executionOrder = append(executionOrder, "second")

		return nil
	})

	err := chain.ExecuteRequestInterceptors(ctx, &qtest.Request{Method: "GET", Path: "/test"})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestInterceptorChain_StopsOnError(t *testing.T) {
	chain := qtest.NewInterceptorChain()
	boom := errors.New("boom")
	called := false

	chain.AddRequestInterceptor(func(ctx context.Context, req *qtest.Request) error {
		return boom
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *qtest.Request) error {
		called = true

		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &qtest.Request{})
	require.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestInterceptorChain_ResponseInterceptors(t *testing.T) {
	chain := qtest.NewInterceptorChain()

	var executionOrder []string

	chain.AddResponseInterceptor(func(ctx context.Context, req *qtest.Request, resp *qtest.Response) error {
		executionOrder = append(executionOrder, "first")

		return nil
	})

	chain.AddResponseInterceptor(func(ctx context.Context, req *qtest.Request, resp *qtest.Response) error {
		executionOrder = append(executionOrder, "second")

		return nil
	})

	err := chain.ExecuteResponseInterceptors(context.Background(),
		&qtest.Request{Method: "GET", Path: "/test"}, &qtest.Response{StatusCode: 200})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestHeaderInterceptors(t *testing.T) {
	req := &qtest.Request{Method: "GET", Path: "/test"}

	require.NoError(t, qtest.HeaderInterceptor(map[string]string{"X-Custom-Header": "custom-value"})(context.Background(), req))
	require.NoError(t, qtest.UserAgentInterceptor("qtest-cli/1.0")(context.Background(), req))

	assert.Equal(t, "custom-value", req.Headers.Get("X-Custom-Header"))
	assert.Equal(t, "qtest-cli/1.0", req.Headers.Get("User-Agent"))
}

func TestRequestIDInterceptor(t *testing.T) {
	interceptor := qtest.RequestIDInterceptor()

	first := &qtest.Request{}
	second := &qtest.Request{}

	require.NoError(t, interceptor(context.Background(), first))
	require.NoError(t, interceptor(context.Background(), second))

	assert.Len(t, first.Headers.Get(qtest.RequestIDHeader), 36)
	assert.NotEqual(t, first.Headers.Get(qtest.RequestIDHeader), second.Headers.Get(qtest.RequestIDHeader))

	preset := &qtest.Request{Headers: http.Header{qtest.RequestIDHeader: []string{"fixed"}}}
	require.NoError(t, interceptor(context.Background(), preset))
	assert.Equal(t, "fixed", preset.Headers.Get(qtest.RequestIDHeader))
}

func TestRateLimitInterceptor(t *testing.T) {
	interceptor := qtest.RateLimitInterceptor(1000)

	start := time.Now()

	for range 5 {
		require.NoError(t, interceptor(context.Background(), &qtest.Request{}))
	}

	assert.Less(t, time.Since(start), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := qtest.RateLimitInterceptor(0.001)
	require.NoError(t, slow(context.Background(), &qtest.Request{}))
	require.Error(t, slow(ctx, &qtest.Request{}))
}

func TestLoggingInterceptors(t *testing.T) {
	logger := &recordingLogger{}
	req := &qtest.Request{Method: "GET", Path: "/api/v3/projects", Headers: http.Header{}}
	req.Headers.Set(qtest.RequestIDHeader, "req-1")

	require.NoError(t, qtest.LoggingInterceptor(logger)(context.Background(), req))
	require.NoError(t, qtest.LoggingResponseInterceptor(logger)(context.Background(), req, &qtest.Response{StatusCode: 200}))
	require.NoError(t, qtest.LoggingResponseInterceptor(logger)(context.Background(), req,
		&qtest.Response{Error: errors.New("connection reset")}))

	assert.Equal(t, []string{"API Request", "API Response", "API Response Error"}, logger.messages)
	assert.Equal(t, "req-1", logger.fields[0]["request_id"])
	assert.Equal(t, "connection reset", logger.fields[2]["error"])
}

func TestMetricsInterceptors(t *testing.T) {
	collector := qtest.NewMetricsCollector()
	requestInterceptor := qtest.MetricsRequestInterceptor(collector)
	responseInterceptor := qtest.MetricsResponseInterceptor(collector)

	var changed []string

	collector.SetOnChange(func(endpoint string, metrics qtest.Metrics) {
		changed = append(changed, endpoint)
	})

	for _, status := range []int{200, 404} {
		req := &qtest.Request{Method: "GET", Path: "/api/v3/projects"}
		require.NoError(t, requestInterceptor(context.Background(), req))
		require.NoError(t, responseInterceptor(context.Background(), req, &qtest.Response{StatusCode: status}))
	}

	metrics, ok := collector.GetMetrics("GET /api/v3/projects")
	require.True(t, ok)
	assert.Equal(t, int64(2), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)
	assert.Equal(t, []string{"GET /api/v3/projects", "GET /api/v3/projects"}, changed)

	_, ok = collector.GetMetrics("POST /api/v3/projects")
	assert.False(t, ok)
}
