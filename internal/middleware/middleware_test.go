package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/clinic-mock-api/internal/metrics"
	"github.com/harentsoaR/clinic-mock-api/internal/utils"
)

var testSecret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"week": c.GetString(WeekKey)})
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func authRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(testSecret), ok)
	return r
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	rec := serve(authRouter(), httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication required", errorBody(t, rec))
}

func TestAuthMiddlewareNoBearerToken(t *testing.T) {
	for _, header := range []string{"Bearer", "Bearer ", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		rec := serve(authRouter(), req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	wrong, err := utils.GenerateToken([]byte("other-secret"), "demo", time.Hour)
	require.NoError(t, err)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString(testSecret)
	require.NoError(t, err)

	headers := map[string]string{
		"garbage":      "Bearer not-a-jwt",
		"wrong secret": "Bearer " + wrong,
		"expired":      "Bearer " + expired,
		"basic scheme": "Basic dXNlcjpwYXNz",
	}
	for name, header := range headers {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		rec := serve(authRouter(), req)
		assert.Equal(t, http.StatusForbidden, rec.Code, name)
		assert.Equal(t, "Invalid or expired token", errorBody(t, rec), name)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token, err := utils.GenerateToken(testSecret, "demo", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := serve(authRouter(), req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateWeekQuery(t *testing.T) {
	r := gin.New()
	r.GET("/appointments", ValidateWeekQuery(time.UTC), ok)

	tests := []struct {
		name   string
		target string
		status int
		errMsg string
	}{
		{"missing", "/appointments", http.StatusBadRequest, "Week parameter is required (YYYY-MM-DD format)"},
		{"empty", "/appointments?week=", http.StatusBadRequest, "Week parameter is required (YYYY-MM-DD format)"},
		{"not a date", "/appointments?week=not-a-date", http.StatusBadRequest, "Invalid date format"},
		{"impossible date", "/appointments?week=2024-02-30", http.StatusBadRequest, "Invalid date format"},
		{"date", "/appointments?week=2024-01-03", http.StatusOK, ""},
		{"timestamp", "/appointments?week=2024-01-03T10:00:00Z", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.status, rec.Code)
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, errorBody(t, rec))
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, rec.Header().Get(RequestIDHeader), rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = serve(r, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestLoggerWritesRequestLine(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(), Logger(zerolog.New(&buf)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request", line["message"])
	assert.Equal(t, "/ping", line["path"])
	assert.Equal(t, float64(http.StatusNoContent), line["status"])
	assert.NotEmpty(t, line["request_id"])
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(Recovery(zerolog.New(&buf)))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", errorBody(t, rec))
	assert.NotContains(t, rec.Body.String(), "boom")
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := gin.New()
	r.Use(Metrics(metrics.NewHTTPMetrics(reg)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	families, err := reg.Gather()
	require.NoError(t, err)
	routes := map[string]bool{}
	for _, mf := range families {
		if mf.GetName() != "clinic_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "route" {
					routes[l.GetValue()] = true
				}
			}
		}
	}
	assert.True(t, routes["/ping"])
	assert.True(t, routes["unmatched"])
}
