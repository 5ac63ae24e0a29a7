//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"order-core/internal/handler/middleware"
	"order-core/internal/pkg/cookie"
	"order-core/internal/pkg/jwt"
	"order-core/internal/usecase"
	"order-core/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
	jwt    *jwt.Service
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.jwt = jwt.NewService("test-secret-key-that-is-long-enough")
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(s.jwt))

	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	whoami := func(c *gin.Context) {
		owner, _ := middleware.GetOwner(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"owner": owner.String(), "role": string(role)})
	}
	s.router.GET("/owner", auth.RequireOwner(), whoami)
	s.router.GET("/auth", auth.RequireAuth(), whoami)
	s.router.GET("/operator", auth.RequireAuth(), auth.RequireRoleAtLeast(usecase.RoleOperator), whoami)
	s.router.GET("/admin", auth.RequireAuth(), auth.RequireRoleAtLeast(usecase.RoleAdmin), whoami)
	s.router.GET("/unguarded-role", auth.RequireRoleAtLeast(usecase.RoleAdmin), whoami)
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

type whoamiResponse struct {
	Owner string `json:"owner"`
	Role  string `json:"role"`
}

func (s *AuthMiddlewareTestSuite) token(userID uuid.UUID, role usecase.Role) string {
	token, err := s.jwt.GenerateToken(userID.String(), string(role), time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *AuthMiddlewareTestSuite) TestRequireOwner() {
	userID := uuid.New()

	s.Run("success: bearer token identifies the user", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/owner", nil, s.token(userID, usecase.RoleCustomer))

		var body whoamiResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("user:"+userID.String(), body.Owner)
		s.Equal("customer", body.Role)
	})

	s.Run("success: access token cookie", func() {
		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodGet, "/owner", nil,
			[]*http.Cookie{{Name: cookie.AccessTokenCookieName, Value: s.token(userID, usecase.RoleCustomer)}})

		var body whoamiResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("user:"+userID.String(), body.Owner)
	})

	s.Run("success: anonymous session header", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/owner", nil,
			map[string]string{middleware.SessionHeader: "sess_abc"})

		var body whoamiResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("session:sess_abc", body.Owner)
		s.Empty(body.Role)
	})

	s.Run("success: anonymous session cookie", func() {
		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodGet, "/owner", nil,
			[]*http.Cookie{{Name: cookie.SessionCookieName, Value: "sess_cookie"}})

		var body whoamiResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("session:sess_cookie", body.Owner)
	})

	s.Run("error: 401 with a bad token even when a session is present", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/owner", nil, map[string]string{
			"Authorization":          "Bearer forged",
			middleware.SessionHeader: "sess_abc",
		})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("error: 401 without any identity", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/owner", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Authentication required")
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("error: 401 for a session-only caller", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/auth", nil,
			map[string]string{middleware.SessionHeader: "sess_abc"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 401 for an expired token", func() {
		expired, err := s.jwt.GenerateToken(uuid.NewString(), "admin", -time.Minute)
		s.Require().NoError(err)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth", nil, expired)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRoleAtLeast() {
	testCases := []struct {
		name       string
		path       string
		role       usecase.Role
		expectCode int
	}{
		{name: "operator route allows operator", path: "/operator", role: usecase.RoleOperator, expectCode: http.StatusOK},
		{name: "operator route allows admin", path: "/operator", role: usecase.RoleAdmin, expectCode: http.StatusOK},
		{name: "operator route refuses customer", path: "/operator", role: usecase.RoleCustomer, expectCode: http.StatusForbidden},
		{name: "admin route refuses operator", path: "/admin", role: usecase.RoleOperator, expectCode: http.StatusForbidden},
		{name: "admin route allows admin", path: "/admin", role: usecase.RoleAdmin, expectCode: http.StatusOK},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.path, nil, s.token(uuid.New(), tc.role))
			if tc.expectCode == http.StatusForbidden {
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Insufficient permissions")
				return
			}
			s.Equal(tc.expectCode, rec.Code)
		})
	}

	s.Run("error: 500 when no auth ran first", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/unguarded-role", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
