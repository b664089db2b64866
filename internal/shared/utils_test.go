package shared

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithQuery(t *testing.T, query string) *gin.Context {
	t.Helper()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParseBoolFilter(t *testing.T) {
	c := contextWithQuery(t, "active=true")
	value := ParseBoolFilter(c, "active")
	require.NotNil(t, value)
	assert.True(t, *value)

	c = contextWithQuery(t, "active=false")
	value = ParseBoolFilter(c, "active")
	require.NotNil(t, value)
	assert.False(t, *value)

	c = contextWithQuery(t, "")
	assert.Nil(t, ParseBoolFilter(c, "active"))

	c = contextWithQuery(t, "active=maybe")
	assert.Nil(t, ParseBoolFilter(c, "active"))
}
