package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foliogate/internal/domain"
	"foliogate/internal/export"
	"foliogate/internal/handler"
	"foliogate/mocks"
)

func TestTransactionHandler_List(t *testing.T) {
	svc := new(mocks.MockTransactionService)
	h := handler.NewTransactionHandler(svc)

	svc.On("List", mock.Anything, "tok-abc", url.Values{"symbol": {"AAPL"}}).
		Return(json.RawMessage(`{"transactions":[{"id":1}],"total":1}`), nil)

	c, w := newAuthedContext(http.MethodGet, "/api/v1/transactions?symbol=AAPL", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"transactions":[{"id":1}],"total":1}}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestTransactionHandler_List_SessionExpired(t *testing.T) {
	svc := new(mocks.MockTransactionService)
	h := handler.NewTransactionHandler(svc)

	svc.On("List", mock.Anything, "tok-abc", mock.Anything).Return(nil, domain.ErrUpstreamUnauthorized)

	c, w := newAuthedContext(http.MethodGet, "/api/v1/transactions", nil)
	h.List(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "SESSION_EXPIRED", errorCode(t, w))
}

func TestTransactionHandler_Update(t *testing.T) {
	svc := new(mocks.MockTransactionService)
	h := handler.NewTransactionHandler(svc)

	svc.On("Update", mock.Anything, "tok-abc", "17", json.RawMessage(`{"quantity":3}`)).
		Return(json.RawMessage(`{"id":17,"quantity":3}`), nil)

	c, w := newAuthedContext(http.MethodPut, "/", strings.NewReader(`{"quantity":3}`))
	c.Params = gin.Params{{Key: "id", Value: "17"}}
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestTransactionHandler_Update_InvalidBody(t *testing.T) {
	svc := new(mocks.MockTransactionService)
	h := handler.NewTransactionHandler(svc)

	svc.On("Update", mock.Anything, "tok-abc", "17", mock.Anything).Return(nil, domain.ErrInvalidBody)

	c, w := newAuthedContext(http.MethodPut, "/", strings.NewReader(`{nope`))
	c.Params = gin.Params{{Key: "id", Value: "17"}}
	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransactionHandler_Delete(t *testing.T) {
	svc := new(mocks.MockTransactionService)
	h := handler.NewTransactionHandler(svc)

	svc.On("Delete", mock.Anything, "tok-abc", "17").Return([]string{"17"}, nil)
	svc.On("DeleteMany", mock.Anything, "tok-abc", []string{"1", "2"}).Return([]string{"1", "2"}, nil)
	svc.On("DeleteMany", mock.Anything, "tok-abc", []string(nil)).Return(nil, domain.ErrEmptySelection)

	c, w := newAuthedContext(http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "17"}}
	h.Delete(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted_ids":["17"]`)

	c, w = newAuthedContext(http.MethodDelete, "/", strings.NewReader(`{"ids":["1","2"]}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.DeleteMany(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newAuthedContext(http.MethodDelete, "/", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.DeleteMany(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_SELECTION", errorCode(t, w))

	svc.AssertExpectations(t)
}

func TestTransactionHandler_Export_CSV(t *testing.T) {
	svc := new(mocks.MockTransactionService)
	h := handler.NewTransactionHandler(svc)

	svc.On("Export", mock.Anything, "tok-abc", export.FormatCSV, url.Values{"broker": {"Zerodha"}}, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(4).(io.Writer), "\uFEFFDate,Symbol\n2026-10-01,AAPL\n")
		}).
		Return(1, nil)

	c, w := newAuthedContext(http.MethodGet, "/api/v1/transactions/export?format=csv&name=My+Trades&broker=Zerodha", nil)
	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="My_Trades_`)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `.csv"`)
	assert.Contains(t, w.Body.String(), "2026-10-01,AAPL")
	svc.AssertExpectations(t)
}

func TestTransactionHandler_Export_XLSXDefaultName(t *testing.T) {
	svc := new(mocks.MockTransactionService)
	h := handler.NewTransactionHandler(svc)

	svc.On("Export", mock.Anything, "tok-abc", export.FormatXLSX, url.Values{}, mock.Anything).Return(0, nil)

	c, w := newAuthedContext(http.MethodGet, "/api/v1/transactions/export?format=xlsx", nil)
	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.FormatXLSX.ContentType(), w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="transactions_`)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `.xlsx"`)
}

func TestTransactionHandler_Export_BadFormat(t *testing.T) {
	svc := new(mocks.MockTransactionService)
	h := handler.NewTransactionHandler(svc)

	c, w := newAuthedContext(http.MethodGet, "/api/v1/transactions/export?format=pdf", nil)
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FORMAT", errorCode(t, w))
	svc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionHandler_Export_UpstreamFailure(t *testing.T) {
	svc := new(mocks.MockTransactionService)
	h := handler.NewTransactionHandler(svc)

	svc.On("Export", mock.Anything, "tok-abc", export.FormatCSV, mock.Anything, mock.Anything).
		Return(0, domain.ErrUpstreamUnavailable)

	c, w := newAuthedContext(http.MethodGet, "/api/v1/transactions/export", nil)
	h.Export(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}
