package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/hostel-desk-api/internal/models"
	"github.com/noah-isme/hostel-desk-api/internal/service"
	appErrors "github.com/noah-isme/hostel-desk-api/pkg/errors"
)

type stubValidator struct {
	claims *models.SessionClaims
	err    error
	got    string
}

func (s *stubValidator) Validate(token string) (*models.SessionClaims, error) {
	s.got = token
	return s.claims, s.err
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/protected", handlers...)
	return r
}

func serve(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTRejectsMissingOrMalformedHeader(t *testing.T) {
	r := newRouter(JWT(&stubValidator{}))

	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Bearer ").Code)
}

func TestJWTPropagatesValidationError(t *testing.T) {
	v := &stubValidator{err: appErrors.Wrap(errors.New("expired"), appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")}
	r := newRouter(JWT(v))

	w := serve(r, "Bearer abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "abc", v.got)
}

func TestJWTStoresClaims(t *testing.T) {
	v := &stubValidator{claims: &models.SessionClaims{UserID: "u1", Role: models.RoleAdmin}}
	var seen *models.SessionClaims
	r := newRouter(JWT(v), func(c *gin.Context) {
		seen, _ = ClaimsFrom(c)
	})

	assert.Equal(t, http.StatusNoContent, serve(r, "bearer abc").Code)
	assert.Equal(t, "u1", seen.UserID)
}

func TestRequireRoles(t *testing.T) {
	claims := func(role models.UserRole) gin.HandlerFunc {
		return func(c *gin.Context) { c.Set(ContextUserKey, &models.SessionClaims{UserID: "u1", Role: role}) }
	}

	assert.Equal(t, http.StatusNoContent, serve(newRouter(claims(models.RoleAdmin), RequireRoles(models.RoleAdmin)), "").Code)
	assert.Equal(t, http.StatusForbidden, serve(newRouter(claims(models.RoleStudent), RequireRoles(models.RoleAdmin, models.RoleMaintenance)), "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(newRouter(RequireRoles(models.RoleAdmin)), "").Code)
}

func TestMetricsRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics))
	r.GET("/complaints/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/complaints/c1", "/complaints/c2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	count, err := testutil.GatherAndCount(metrics.Registry(), "http_requests_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
