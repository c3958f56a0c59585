package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrandt/wayplan/internal/domain"
	"github.com/obrandt/wayplan/internal/handler"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id int64) (domain.Trip, error)
	list    func(ctx context.Context) ([]domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:        1,
		Name:      "Kansai Loop",
		StartDate: time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
		DayCount:  5,
		Notes:     "cherry blossom season",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			assert.Equal(t, "Kansai Loop", trip.Name)
			assert.Equal(t, 5, trip.DayCount)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name":       "Kansai Loop",
		"start_date": "2026-04-03",
		"day_count":  5,
	})
	req := httptest.NewRequest(http.MethodPost, "/trips", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp domain.Trip
	decodeJSON(t, rec.Body, &resp)
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, fixture.Name, resp.Name)
}

func TestCreateTrip_400_BadDate(t *testing.T) {
	svc := &mockTripServicer{}

	body := jsonBody(t, map[string]any{
		"name":       "Kansai Loop",
		"start_date": "April 3rd",
		"day_count":  5,
	})
	req := httptest.NewRequest(http.MethodPost, "/trips", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTrip_422_ValidationError(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{
		"name":       "",
		"start_date": "2026-04-03",
		"day_count":  5,
	})
	req := httptest.NewRequest(http.MethodPost, "/trips", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decodeJSON(t, rec.Body, &resp)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "name is required", resp.Error.Message)
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_200(t *testing.T) {
	svc := &mockTripServicer{
		list: func(_ context.Context) ([]domain.Trip, error) {
			return []domain.Trip{tripFixture()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.Trip
	decodeJSON(t, rec.Body, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, "Kansai Loop", resp[0].Name)
}

// ---- GET /trips/{tripID} ---------------------------------------------------

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ int64) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/99", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTrip_400_BadID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/trips/abc", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(&mockTripServicer{}, nil, nil, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- PUT /trips/{tripID} ---------------------------------------------------

func TestUpdateTrip_200_PassesPathID(t *testing.T) {
	var gotID int64
	svc := &mockTripServicer{
		update: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			gotID = trip.ID
			return trip, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name":       "Kansai Loop",
		"start_date": "2026-04-03",
		"day_count":  3,
	})
	req := httptest.NewRequest(http.MethodPut, "/trips/7", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotID, "id comes from the path, not the body")
}

// ---- PUT /trips/{tripID}/day-count ------------------------------------------

func TestUpdateTripDayCount_200_KeepsOtherFields(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		getByID: func(_ context.Context, id int64) (domain.Trip, error) {
			assert.Equal(t, int64(1), id)
			return fixture, nil
		},
		update: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			assert.Equal(t, 3, trip.DayCount)
			assert.Equal(t, fixture.Name, trip.Name, "only day_count changes")
			return trip, nil
		},
	}

	body := jsonBody(t, map[string]any{"day_count": 3})
	req := httptest.NewRequest(http.MethodPut, "/trips/1/day-count", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.Trip
	decodeJSON(t, rec.Body, &resp)
	assert.Equal(t, 3, resp.DayCount)
}

func TestUpdateTripDayCount_404(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ int64) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", domain.ErrNotFound)
		},
	}

	body := jsonBody(t, map[string]any{"day_count": 3})
	req := httptest.NewRequest(http.MethodPut, "/trips/99/day-count", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- DELETE /trips/{tripID} ------------------------------------------------

func TestDeleteTrip_204(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, id int64) error {
			assert.Equal(t, int64(4), id)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/trips/4", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
