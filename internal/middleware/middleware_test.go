package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/scholarhub-api/internal/models"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
)

type stubSessions struct {
	claims *models.SessionClaims
	err    error
}

func (s stubSessions) ValidateToken(string) (*models.SessionClaims, error) {
	return s.claims, s.err
}

func (stubSessions) DemoStudentID() int { return 1 }

func sessionRouter(sessions sessionValidator, required bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(sessions, required))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"student_id": StudentID(c)})
	})
	return r
}

func doRequest(r http.Handler, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSessionFallsBackToDemoStudent(t *testing.T) {
	rec := doRequest(sessionRouter(stubSessions{}, false), http.MethodGet, "/me", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"student_id":1}`, rec.Body.String())
}

func TestSessionRequiredWithoutHeader(t *testing.T) {
	rec := doRequest(sessionRouter(stubSessions{}, true), http.MethodGet, "/me", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionUsesTokenClaims(t *testing.T) {
	sessions := stubSessions{claims: &models.SessionClaims{StudentID: 2}}

	rec := doRequest(sessionRouter(sessions, false), http.MethodGet, "/me", "Bearer abc")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"student_id":2}`, rec.Body.String())
}

func TestSessionRejectsMalformedHeader(t *testing.T) {
	r := sessionRouter(stubSessions{}, false)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/me", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/me", "Bearer ").Code)
}

func TestSessionRejectsInvalidToken(t *testing.T) {
	sessions := stubSessions{err: appErrors.Wrap(errors.New("bad"), appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")}

	rec := doRequest(sessionRouter(sessions, false), http.MethodGet, "/me", "Bearer abc")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid session token")
}

type recordedRequest struct {
	method, path string
	status       int
}

type requestRecorder struct {
	seen []recordedRequest
}

func (r *requestRecorder) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	r.seen = append(r.seen, recordedRequest{method: method, path: path, status: status})
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observed := &requestRecorder{}
	r := gin.New()
	r.Use(Metrics(observed))
	r.GET("/courses/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	doRequest(r, http.MethodGet, "/courses/7", "")
	doRequest(r, http.MethodGet, "/missing", "")

	require.Len(t, observed.seen, 2)
	assert.Equal(t, recordedRequest{method: http.MethodGet, path: "/courses/:id", status: http.StatusTeapot}, observed.seen[0])
	assert.Equal(t, "unmatched", observed.seen[1].path)
}

func TestAuditLogsSuccessfulWrites(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(Session(stubSessions{}, false))
	r.POST("/courses/:id/enroll", Audit(zap.New(core), "enroll", "course"), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/courses/:id/drop", Audit(zap.New(core), "drop", "course"), func(c *gin.Context) { c.Status(http.StatusConflict) })

	doRequest(r, http.MethodPost, "/courses/3/enroll", "")
	doRequest(r, http.MethodPost, "/courses/3/drop", "")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "enroll", fields["action"])
	assert.Equal(t, "3", fields["resource_id"])
	assert.Equal(t, int64(1), fields["student_id"])
}

func TestResponseMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithResponseMeta())
	r.GET("/", func(c *gin.Context) {
		SetCacheHit(c, true)
		c.JSON(http.StatusOK, ExtractMeta(c))
	})

	rec := doRequest(r, http.MethodGet, "/", "")

	assert.Contains(t, rec.Body.String(), `"cache_hit":true`)
	assert.Contains(t, rec.Body.String(), `"processing_time_ms"`)
	assert.NotContains(t, rec.Body.String(), "started_at")
}
