package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corporativo/sdu/pkg/reconcile"
	"github.com/corporativo/sdu/pkg/tables"
)

func testResult(mode reconcile.Mode) *reconcile.Result {
	return &reconcile.Result{Mode: mode, Table: tables.New("nombre")}
}

func TestPutIssuesCookie(t *testing.T) {
	s := New()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/process", nil)

	s.Put(w, r, testResult(reconcile.ModeContactos))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestGetReturnsStoredResult(t *testing.T) {
	s := New()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/process", nil)
	s.Put(w, r, testResult(reconcile.ModeRelacion))
	cookie := w.Result().Cookies()[0]

	next := httptest.NewRequest(http.MethodGet, "/results", nil)
	next.AddCookie(cookie)

	result, ok := s.Get(next)
	require.True(t, ok)
	assert.Equal(t, reconcile.ModeRelacion, result.Mode)
	assert.Equal(t, 1, s.Len())
}

func TestGetWithoutCookie(t *testing.T) {
	s := New()
	_, ok := s.Get(httptest.NewRequest(http.MethodGet, "/results", nil))
	assert.False(t, ok)
}

func TestPutReplacesWholesale(t *testing.T) {
	s := New()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/process", nil)
	s.Put(w, r, testResult(reconcile.ModeContactos))
	cookie := w.Result().Cookies()[0]

	again := httptest.NewRequest(http.MethodPost, "/process", nil)
	again.AddCookie(cookie)
	s.Put(httptest.NewRecorder(), again, testResult(reconcile.ModeRelacion))

	read := httptest.NewRequest(http.MethodGet, "/results", nil)
	read.AddCookie(cookie)
	result, ok := s.Get(read)
	require.True(t, ok)
	assert.Equal(t, reconcile.ModeRelacion, result.Mode)
	assert.Equal(t, 1, s.Len())
}

func TestClear(t *testing.T) {
	s := New()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/process", nil)
	s.Put(w, r, testResult(reconcile.ModeContactos))
	cookie := w.Result().Cookies()[0]

	read := httptest.NewRequest(http.MethodPost, "/reset", nil)
	read.AddCookie(cookie)
	s.Clear(read)

	_, ok := s.Get(read)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}
