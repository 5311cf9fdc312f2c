package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/meetpoint/backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLambdaHandler struct {
	handleFn func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

func (m *mockLambdaHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return m.handleFn(ctx, request)
}

func echoHandler(t *testing.T, check func(events.APIGatewayProxyRequest)) *mockLambdaHandler {
	return &mockLambdaHandler{handleFn: func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		if check != nil {
			check(request)
		}
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8", "Access-Control-Allow-Origin": "*"},
			Body:       `{"ok":true}`,
		}, nil
	}}
}

func testConfig() *config.Config {
	return config.New(config.WithCORSOrigins([]string{"http://localhost:5173"}), config.WithRateLimit(100, time.Minute))
}

func TestHealth(t *testing.T) {
	router := NewRouter(testConfig(), echoHandler(t, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router := NewRouter(testConfig(), echoHandler(t, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestAPIRequestIsAdapted(t *testing.T) {
	router := NewRouter(testConfig(), echoHandler(t, func(request events.APIGatewayProxyRequest) {
		assert.Equal(t, http.MethodPost, request.HTTPMethod)
		assert.Equal(t, "/api/geocode", request.Path)
		assert.Equal(t, `{"stationName":"渋谷"}`, request.Body)
		assert.Equal(t, "application/json", request.Headers["Content-Type"])
		assert.NotEmpty(t, request.RequestContext.RequestID)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/geocode", strings.NewReader(`{"stationName":"渋谷"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestQueryParametersAreAdapted(t *testing.T) {
	router := NewRouter(testConfig(), echoHandler(t, func(request events.APIGatewayProxyRequest) {
		assert.Equal(t, "渋谷", request.QueryStringParameters["input"])
		assert.Equal(t, []string{"渋谷"}, request.MultiValueQueryStringParameters["input"])
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/autocomplete?input=%E6%B8%8B%E8%B0%B7", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestConfiguredCORSOriginWins(t *testing.T) {
	router := NewRouter(testConfig(), echoHandler(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/autocomplete", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandlerErrorWithoutResponse(t *testing.T) {
	router := NewRouter(testConfig(), &mockLambdaHandler{handleFn: func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{}, errors.New("boom")
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/autocomplete", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPanicIsRecovered(t *testing.T) {
	router := NewRouter(testConfig(), &mockLambdaHandler{handleFn: func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		panic("boom")
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/autocomplete", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := config.New(config.WithRateLimit(2, time.Minute))
	router := NewRouter(cfg, echoHandler(t, nil))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/autocomplete", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "health is not rate limited")
}

func TestBodyTooLarge(t *testing.T) {
	router := NewRouter(testConfig(), echoHandler(t, func(request events.APIGatewayProxyRequest) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/geocode", io.LimitReader(zeroReader{}, maxBodyBytes+1))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = '0'
	}
	return len(p), nil
}

func TestNewServerAddress(t *testing.T) {
	srv := New(config.New(config.WithPort(8080)), echoHandler(t, nil))
	require.NotNil(t, srv.Handler)
	assert.Equal(t, ":8080", srv.Addr)
}
