package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-api/models"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/waiter-only", AuthRequired(), RoleRequired(models.RoleWaiter, models.RoleAdmin),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c)})
		})
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/waiter-only", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired_MissingToken(t *testing.T) {
	w := doRequest(testRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_GarbageToken(t *testing.T) {
	w := doRequest(testRouter(), "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleRequired_AllowsWaiterAndAdmin(t *testing.T) {
	r := testRouter()

	for _, role := range []models.UserRole{models.RoleWaiter, models.RoleAdmin} {
		token, err := GenerateToken(&models.User{ID: 7, Email: "w@example.com", Role: role})
		require.NoError(t, err)
		w := doRequest(r, token)
		assert.Equal(t, http.StatusOK, w.Code, "role %s", role)
	}
}

func TestRoleRequired_RejectsClient(t *testing.T) {
	token, err := GenerateToken(&models.User{ID: 3, Email: "c@example.com", Role: models.RoleClient})
	require.NoError(t, err)
	w := doRequest(testRouter(), token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
