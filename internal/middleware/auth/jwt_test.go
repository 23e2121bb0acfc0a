package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testJWTSecret = "test-secret"

func createValidJWT(t *testing.T, subject, secret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return tokenString
}

func invokeMiddleware(t *testing.T, authHeader string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	middleware := JWTMiddleware(JWTConfig{
		Secret: testJWTSecret,
		Logger: zap.NewNop(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := middleware(next)(c)
	assert.NoError(t, err)
	return rec
}

func TestJWTMiddleware_SuccessfulAuthentication(t *testing.T) {
	userID := uuid.New()
	token := createValidJWT(t, userID.String(), testJWTSecret)

	rec := invokeMiddleware(t, "Bearer "+token, func(c echo.Context) error {
		authenticated, err := GetUserID(c)
		assert.NoError(t, err)
		assert.Equal(t, userID, authenticated)
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddleware_MissingAuthorizationHeader(t *testing.T) {
	rec := invokeMiddleware(t, "", func(c echo.Context) error {
		t.Fatal("handler should not be reached")
		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_AUTH_HEADER")
}

func TestJWTMiddleware_InvalidHeaderFormat(t *testing.T) {
	token := createValidJWT(t, uuid.NewString(), testJWTSecret)

	rec := invokeMiddleware(t, "Token "+token, func(c echo.Context) error {
		t.Fatal("handler should not be reached")
		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_AUTH_FORMAT")
}

func TestJWTMiddleware_WrongSigningSecret(t *testing.T) {
	token := createValidJWT(t, uuid.NewString(), "other-secret")

	rec := invokeMiddleware(t, "Bearer "+token, func(c echo.Context) error {
		t.Fatal("handler should not be reached")
		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString([]byte(testJWTSecret))
	assert.NoError(t, err)

	rec := invokeMiddleware(t, "Bearer "+tokenString, func(c echo.Context) error {
		t.Fatal("handler should not be reached")
		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestJWTMiddleware_SubjectMustBeUserID(t *testing.T) {
	token := createValidJWT(t, "service-account", testJWTSecret)

	rec := invokeMiddleware(t, "Bearer "+token, func(c echo.Context) error {
		t.Fatal("handler should not be reached")
		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_SUBJECT")
}

func TestGetUserID_NoAuthenticatedUser(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := GetUserID(c)
	assert.Error(t, err)
}
