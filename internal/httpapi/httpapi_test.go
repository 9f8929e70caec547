package httpapi

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jdclarke5/sylver-go/internal/storebackend"
)

func newTestServer() *Server {
	return New(storebackend.NewMemory(), zerolog.Nop())
}

func TestHandleGetRejectsMissingInput(t *testing.T) {
	assert := require.New(t)
	server := newTestServer()

	req := httptest.NewRequest("GET", "/api/get", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(400, rec.Code)
}

func TestHandleGetResolvesQuickPosition(t *testing.T) {
	assert := require.New(t)
	server := newTestServer()

	req := httptest.NewRequest("GET", "/api/get?input=5", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(200, rec.Code)

	var body map[string]any
	assert.NoError(json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal("P", body["status"])
	assert.EqualValues(5, body["multiplicity"])
}

func TestHandleGetSubmitsUnknownPositionsInBackground(t *testing.T) {
	assert := require.New(t)
	server := newTestServer()

	req := httptest.NewRequest("GET", "/api/get?input=6,9", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(200, rec.Code)

	var body map[string]any
	assert.NoError(json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal("?", body["status"])

	server.Pool.Wait()
	status, ok := server.Backend.GetStatus("{6, 9}")
	assert.True(ok)
	assert.Equal(storebackend.StatusP, status)
}

func TestHandleGetWithChildren(t *testing.T) {
	assert := require.New(t)
	server := newTestServer()

	req := httptest.NewRequest("GET", "/api/get?input=5&children=1", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(200, rec.Code)

	var body map[string]any
	assert.NoError(json.NewDecoder(rec.Body).Decode(&body))
	children, ok := body["children"].(map[string]any)
	assert.True(ok)
	assert.NotEmpty(children)
}

func TestHandleGetRejectsInvalidLength(t *testing.T) {
	assert := require.New(t)
	server := newTestServer()

	req := httptest.NewRequest("GET", "/api/get?input=5&length=notanumber", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(400, rec.Code)
}
