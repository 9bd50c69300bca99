package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "velora/pkg/errors"
)

func record(t *testing.T, fn func(c echo.Context) error) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, fn(c))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestSuccess(t *testing.T) {
	rec, body := record(t, func(c echo.Context) error {
		return Success(c, map[string]string{"hello": "world"})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
	assert.NotEmpty(t, body.Timestamp)
}

func TestErrorWithAppError(t *testing.T) {
	rec, body := record(t, func(c echo.Context) error {
		return Error(c, apperrors.NotFound("CART_NOT_FOUND", "Cart not found", nil))
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "CART_NOT_FOUND", body.Error.Code)
	assert.Equal(t, "Cart not found", body.Error.Message)
}

func TestErrorWithDomainError(t *testing.T) {
	rec, body := record(t, func(c echo.Context) error {
		return Error(c, apperrors.NewDomain("SLUG_INVALID", "Slug must be lowercase"))
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "SLUG_INVALID", body.Error.Code)
}

func TestErrorWithUnknownError(t *testing.T) {
	rec, body := record(t, func(c echo.Context) error {
		return Error(c, fmt.Errorf("connection reset"))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	// internal details never leak to the client
	assert.NotContains(t, body.Error.Message, "connection reset")
}

func TestPaginated(t *testing.T) {
	rec, body := record(t, func(c echo.Context) error {
		return Paginated(c, []string{"a", "b"}, 41, 2, 20)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)

	payload, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var page PaginatedResponse
	require.NoError(t, json.Unmarshal(payload, &page))
	assert.Equal(t, int64(41), page.Total)
	assert.Equal(t, 3, page.TotalPages)
}
