package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/crossbuy/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("maps domain error codes to HTTP status", func(t *testing.T) {
		c, w := newTestContext(t)

		h.HandleError(c, shared.NewDomainError("OVER_COMMITMENT", "Cannot purchase 11, only 10 remaining"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, "OVER_COMMITMENT", resp.Error.Code)
		assert.Equal(t, "Cannot purchase 11, only 10 remaining", resp.Error.Message)
	})

	t.Run("maps not found to 404", func(t *testing.T) {
		c, w := newTestContext(t)

		h.HandleError(c, shared.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("hides unknown errors behind a generic message", func(t *testing.T) {
		c, w := newTestContext(t)

		h.HandleError(c, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
		assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
	})

	t.Run("includes the request ID when present", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Set(RequestIDKey, "req-123")

		h.HandleError(c, shared.ErrNotFound)

		resp := decodeResponse(t, w)
		assert.Equal(t, "req-123", resp.Error.RequestID)
	})

	t.Run("does nothing for nil error", func(t *testing.T) {
		c, w := newTestContext(t)

		h.HandleError(c, nil)

		assert.Empty(t, w.Body.Bytes())
	})
}

func TestBaseHandler_Responses(t *testing.T) {
	h := &BaseHandler{}

	t.Run("success", func(t *testing.T) {
		c, w := newTestContext(t)

		h.Success(c, map[string]string{"hello": "world"})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
	})

	t.Run("created", func(t *testing.T) {
		c, w := newTestContext(t)

		h.Created(c, map[string]string{"id": uuid.New().String()})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("no content", func(t *testing.T) {
		c, w := newTestContext(t)

		h.NoContent(c)
		// gin only records the status on c.Status; the engine normally
		// flushes it after the handler chain, so flush manually here.
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})

	t.Run("bad request", func(t *testing.T) {
		c, w := newTestContext(t)

		h.BadRequest(c, "id must be a valid UUID")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})
}

func TestParseUUIDParam(t *testing.T) {
	t.Run("parses a valid UUID", func(t *testing.T) {
		c, _ := newTestContext(t)
		id := uuid.New()
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		parsed, err := parseUUIDParam(c, "id")

		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

		_, err := parseUUIDParam(c, "id")

		assert.Error(t, err)
	})
}

func TestGetRequestID(t *testing.T) {
	t.Run("prefers the context value", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set(RequestIDKey, "ctx-id")
		c.Request.Header.Set(RequestIDKey, "header-id")

		assert.Equal(t, "ctx-id", getRequestID(c))
	})

	t.Run("falls back to the header", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request.Header.Set(RequestIDKey, "header-id")

		assert.Equal(t, "header-id", getRequestID(c))
	})

	t.Run("empty when neither is set", func(t *testing.T) {
		c, _ := newTestContext(t)

		assert.Empty(t, getRequestID(c))
	})
}
