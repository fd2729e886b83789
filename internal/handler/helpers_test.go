package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"foliogate/internal/domain"
	"foliogate/internal/handler"
	"foliogate/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testPrincipal = domain.Principal{
	Subject: "user-42",
	Email:   "ada@example.com",
	Name:    "Ada",
	Token:   "tok-abc",
}

func newTestContext(method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if body == nil {
		body = http.NoBody
	}
	c.Request, _ = http.NewRequest(method, target, body)
	return c, w
}

func newAuthedContext(method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	c, w := newTestContext(method, target, body)
	middleware.SetPrincipal(c, testPrincipal)
	return c, w
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}
