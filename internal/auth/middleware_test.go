package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireToken(secret), func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claims not set"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": claims.UserID, "email": claims.Email})
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireToken_MissingHeader(t *testing.T) {
	r := newProtectedRouter([]byte("s"))

	w := doGet(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "token not provided")
}

func TestRequireToken_MissingTokenSegment(t *testing.T) {
	r := newProtectedRouter([]byte("s"))

	w := doGet(r, "Bearer")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireToken_InvalidToken(t *testing.T) {
	r := newProtectedRouter([]byte("s"))

	w := doGet(r, "Bearer garbage")
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestRequireToken_WrongSecret(t *testing.T) {
	r := newProtectedRouter([]byte("right"))

	tok, err := GenerateToken(1, "u@example.com", []byte("wrong"))
	require.NoError(t, err)

	w := doGet(r, "Bearer "+tok)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireToken_ValidToken(t *testing.T) {
	secret := []byte("s")
	r := newProtectedRouter(secret)

	tok, err := GenerateToken(5, "u@example.com", secret)
	require.NoError(t, err)

	w := doGet(r, "Bearer "+tok)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"uid":5`)
}
