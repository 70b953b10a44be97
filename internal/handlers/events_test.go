package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"social-service/internal/apperrors"
	"social-service/internal/models"
	"social-service/internal/services"
)

func TestDashboardCreateEvent(t *testing.T) {
	router, deps := setupRouter()
	in := services.EventInput{Title: "party", Description: "", Date: "2026-03-20"}
	deps.events.On("Create", mock.Anything, caller, in).Return(models.Event{ID: 1, OwnerID: 1, Title: "party"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/dashboard", strings.NewReader("title=party&date=2026-03-20"))
	req.Header = formHeader()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	deps.events.AssertExpectations(t)
}

func TestDashboardListsCurrentMonth(t *testing.T) {
	router, deps := setupRouter()
	deps.events.On("ListCurrentMonth", mock.Anything, caller).Return([]models.Event{{ID: 1, Title: "party"}}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"party"`)
}

func TestEditEventFormRendersDate(t *testing.T) {
	router, deps := setupRouter()
	deps.events.On("Get", mock.Anything, caller, 4).Return(models.Event{ID: 4, OwnerID: 1, Title: "x", Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events/4/edit", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"date":"2026-03-09"`)
}

func TestUpdateOthersEventRedirects(t *testing.T) {
	router, deps := setupRouter()
	deps.events.On("Update", mock.Anything, caller, 4, mock.Anything).Return(nil, apperrors.NewForbiddenError("you can only change your own events")).Once()

	req := httptest.NewRequest(http.MethodPost, "/events/4/edit", strings.NewReader("title=x&date=2026-03-09"))
	req.Header = formHeader()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/events", rec.Header().Get("Location"))
}

func TestDeleteEvent(t *testing.T) {
	router, deps := setupRouter()
	deps.events.On("Delete", mock.Anything, caller, 4).Return(nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events/4/delete", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
