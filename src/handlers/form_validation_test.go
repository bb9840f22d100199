package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func postForm(t *testing.T, handler http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	return rec
}

func TestCreateUserReportsMissingFields(t *testing.T) {
	rec := postForm(t, CreateUser(nil), url.Values{
		"fullname": {"Ana Cruz"},
		"username": {"  "},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "username")
	assert.Contains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), "role")
	assert.NotContains(t, rec.Body.String(), "fullname")
}

func TestCreateLogbookEntryReportsMissingFields(t *testing.T) {
	rec := postForm(t, CreateLogbookEntry(nil), url.Values{
		"first_name": {"Ana"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "last_name")
	assert.Contains(t, rec.Body.String(), "date")
}

func TestCreateReportReportsMissingFields(t *testing.T) {
	rec := postForm(t, CreateReport(nil, t.TempDir()), url.Values{
		"type": {"Financial"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "reported_for")
}
