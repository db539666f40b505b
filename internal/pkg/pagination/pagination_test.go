package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryFor(t *testing.T, rawQuery string) Query {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return FromContext(c)
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, Query{Page: 1, PerPage: 20}, queryFor(t, ""))
	assert.Equal(t, Query{Page: 3, PerPage: 50}, queryFor(t, "page=3&per_page=50"))
	assert.Equal(t, Query{Page: 1, PerPage: 20}, queryFor(t, "page=-1&per_page=0"))
	assert.Equal(t, Query{Page: 1, PerPage: MaxPerPage}, queryFor(t, "per_page=500"))
	assert.Equal(t, Query{Page: 1, PerPage: 20}, queryFor(t, "page=abc"))
}
