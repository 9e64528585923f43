package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condovia/reservation/booking"
	"github.com/condovia/reservation/middlewares/auth"
	"github.com/condovia/reservation/utils"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(t *testing.T) (*gin.Engine, *booking.Caller) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	gin.SetMode(gin.TestMode)

	var captured booking.Caller
	r := gin.New()
	r.GET("/whoami", auth.AuthMiddleware(), func(c *gin.Context) {
		caller, err := utils.GetCaller(c)
		require.NoError(t, err)
		captured = caller
		c.JSON(http.StatusOK, gin.H{"id": caller.ID, "role": caller.Role})
	})
	return r, &captured
}

func request(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("ValidToken", func(t *testing.T) {
		r, captured := newAuthRouter(t)
		token := signToken(t, jwt.MapClaims{"sub": "42", "role": "sindico"})

		w := request(r, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, int64(42), captured.ID)
		assert.Equal(t, booking.RoleSindico, captured.Role)
	})

	t.Run("NumericSubClaim", func(t *testing.T) {
		r, captured := newAuthRouter(t)
		token := signToken(t, jwt.MapClaims{"sub": 42, "role": "admin"})

		w := request(r, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(42), captured.ID)
	})

	t.Run("LegacyMoradorRole", func(t *testing.T) {
		r, captured := newAuthRouter(t)
		token := signToken(t, jwt.MapClaims{"sub": "7", "role": "morador"})

		w := request(r, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, booking.RoleResident, captured.Role)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		r, _ := newAuthRouter(t)
		w := request(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("BadSignature", func(t *testing.T) {
		r, _ := newAuthRouter(t)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42", "role": "admin"})
		signed, err := token.SignedString([]byte("wrong-secret"))
		require.NoError(t, err)

		w := request(r, "Bearer "+signed)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("UnknownRoleRejected", func(t *testing.T) {
		r, _ := newAuthRouter(t)
		token := signToken(t, jwt.MapClaims{"sub": "42", "role": "superuser"})

		w := request(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MissingSubRejected", func(t *testing.T) {
		r, _ := newAuthRouter(t)
		token := signToken(t, jwt.MapClaims{"role": "admin"})

		w := request(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
