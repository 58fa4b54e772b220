package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, query string) (PaginationParams, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/tasks?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParams_Defaults(t *testing.T) {
	params, err := paramsFor(t, "")
	require.NoError(t, err)

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 50, params.PageSize)
	assert.Equal(t, 0, params.Offset)
}

func TestGetPaginationParams_ComputesOffset(t *testing.T) {
	params, err := paramsFor(t, "page=3&page_size=20")
	require.NoError(t, err)

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 20, params.PageSize)
	assert.Equal(t, 40, params.Offset)
}

func TestGetPaginationParams_CapsOversizedPageSize(t *testing.T) {
	params, err := paramsFor(t, "page_size=500")
	require.NoError(t, err)

	assert.Equal(t, 100, params.PageSize)
}

func TestGetPaginationParams_RejectsMalformedValues(t *testing.T) {
	for _, query := range []string{"page=abc", "page=0", "page=-1", "page_size=zero", "page_size=0"} {
		_, err := paramsFor(t, query)
		assert.Error(t, err, query)
	}
}
