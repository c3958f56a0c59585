package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrandt/wayplan/internal/domain"
	"github.com/obrandt/wayplan/internal/handler"
	"github.com/obrandt/wayplan/internal/service"
)

// mockStopServicer is a test double for handler.StopServicer.
type mockStopServicer struct {
	listByDayPlan func(ctx context.Context, dayPlanID int64) ([]domain.Stop, error)
	syncDay       func(ctx context.Context, dayPlanID int64, stops []domain.Stop) (service.SyncResult, error)
	insertStop    func(ctx context.Context, dayPlanID int64, index int, stop domain.Stop) (service.SyncResult, error)
	removeStop    func(ctx context.Context, dayPlanID int64, index int) (service.SyncResult, error)
	moveStop      func(ctx context.Context, dayPlanID int64, from, to int) (service.SyncResult, error)
	updateStop    func(ctx context.Context, dayPlanID int64, index int, stop domain.Stop) (service.SyncResult, error)
	promotePlace  func(ctx context.Context, dayPlanID int64, index int) (service.SyncResult, error)
}

func (m *mockStopServicer) ListByDayPlan(ctx context.Context, id int64) ([]domain.Stop, error) {
	return m.listByDayPlan(ctx, id)
}
func (m *mockStopServicer) SyncDay(ctx context.Context, id int64, stops []domain.Stop) (service.SyncResult, error) {
	return m.syncDay(ctx, id, stops)
}
func (m *mockStopServicer) InsertStop(ctx context.Context, id int64, index int, stop domain.Stop) (service.SyncResult, error) {
	return m.insertStop(ctx, id, index, stop)
}
func (m *mockStopServicer) RemoveStop(ctx context.Context, id int64, index int) (service.SyncResult, error) {
	return m.removeStop(ctx, id, index)
}
func (m *mockStopServicer) MoveStop(ctx context.Context, id int64, from, to int) (service.SyncResult, error) {
	return m.moveStop(ctx, id, from, to)
}
func (m *mockStopServicer) UpdateStop(ctx context.Context, id int64, index int, stop domain.Stop) (service.SyncResult, error) {
	return m.updateStop(ctx, id, index, stop)
}
func (m *mockStopServicer) PromotePlace(ctx context.Context, id int64, index int) (service.SyncResult, error) {
	return m.promotePlace(ctx, id, index)
}

var _ handler.StopServicer = (*mockStopServicer)(nil)

// stopPayload mirrors the wire shape for requests and assertions.
type stopPayload struct {
	ID               *int64  `json:"id"`
	PlaceID          *int64  `json:"placeId"`
	Order            int     `json:"order"`
	StartTime        *string `json:"startTime"`
	Duration         int     `json:"duration"`
	EndTime          *string `json:"endTime"`
	TravelDuration   int     `json:"travelDuration"`
	TransportMode    string  `json:"transportMode"`
	Name             string  `json:"name,omitempty"`
	Annotation       *string `json:"annotation"`
	TravelAnnotation string  `json:"travelAnnotation"`
}

type syncResponse struct {
	Stops    []stopPayload `json:"stops"`
	Adjusted []int         `json:"adjusted"`
}

// ---- PUT /day-plans/{dayPlanID}/stops --------------------------------------

func TestSyncStops_200_AssignsIDsAndDecodesTags(t *testing.T) {
	var gotStops []domain.Stop
	svc := &mockStopServicer{
		syncDay: func(_ context.Context, id int64, stops []domain.Stop) (service.SyncResult, error) {
			assert.Equal(t, int64(5), id)
			gotStops = stops
			saved := make([]domain.Stop, len(stops))
			copy(saved, stops)
			for i := range saved {
				saved[i].Ref = domain.PersistedRef(int64(100 + i))
				saved[i].Position = i + 1
			}
			saved[0].Start, saved[0].End = "10:00", "11:00"
			return service.SyncResult{Stops: saved}, nil
		},
	}

	note := "ramen first #si:15 #place:{\"name\":\"Hidden ramen bar\",\"lat\":34.7,\"lng\":135.5}"
	body := jsonBody(t, []map[string]any{
		{
			"id": nil, "placeId": nil, "order": 1,
			"startTime": nil, "duration": 60, "endTime": nil,
			"travelDuration": 0, "transportMode": "walk",
			"annotation": note, "travelAnnotation": "#mi:10",
		},
	})
	req := httptest.NewRequest(http.MethodPut, "/day-plans/5/stops", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, gotStops, 1)
	assert.False(t, gotStops[0].Ref.Persisted(), "null id means not yet saved")
	assert.Equal(t, "ramen first", gotStops[0].Note.Text, "tags are stripped before the service sees the note")
	assert.Equal(t, 15, gotStops[0].Note.StayBuffer)
	require.NotNil(t, gotStops[0].Note.Place)
	assert.Equal(t, "Hidden ramen bar", gotStops[0].Note.Place.Name)
	assert.Equal(t, 10, gotStops[0].TravelNote.TravelBuffer)

	var resp syncResponse
	decodeJSON(t, rec.Body, &resp)
	require.Len(t, resp.Stops, 1)
	require.NotNil(t, resp.Stops[0].ID)
	assert.Equal(t, int64(100), *resp.Stops[0].ID)
	require.NotNil(t, resp.Stops[0].Annotation, "tags are re-encoded on the way out")
	assert.Contains(t, *resp.Stops[0].Annotation, "#si:15")
	assert.Contains(t, *resp.Stops[0].Annotation, "#place:")
	assert.NotNil(t, resp.Adjusted)
	assert.Empty(t, resp.Adjusted)
}

func TestSyncStops_200_SurfacesAdjusted(t *testing.T) {
	svc := &mockStopServicer{
		syncDay: func(_ context.Context, _ int64, stops []domain.Stop) (service.SyncResult, error) {
			return service.SyncResult{Stops: stops, Adjusted: []int{2}}, nil
		},
	}

	body := jsonBody(t, []map[string]any{
		{"id": nil, "order": 1, "duration": 60, "transportMode": "walk", "name": "Castle", "travelAnnotation": ""},
		{"id": nil, "order": 2, "duration": 30, "startTime": "09:30", "transportMode": "walk", "name": "Garden", "travelAnnotation": ""},
	})
	req := httptest.NewRequest(http.MethodPut, "/day-plans/5/stops", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp syncResponse
	decodeJSON(t, rec.Body, &resp)
	assert.Equal(t, []int{2}, resp.Adjusted)
}

func TestSyncStops_400_UnknownTransportMode(t *testing.T) {
	body := jsonBody(t, []map[string]any{
		{"id": nil, "order": 1, "duration": 60, "transportMode": "teleport", "name": "Castle", "travelAnnotation": ""},
	})
	req := httptest.NewRequest(http.MethodPut, "/day-plans/5/stops", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, &mockStopServicer{}, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- POST /day-plans/{dayPlanID}/stops -------------------------------------

func TestInsertStop_201(t *testing.T) {
	var gotIndex int
	svc := &mockStopServicer{
		insertStop: func(_ context.Context, _ int64, index int, stop domain.Stop) (service.SyncResult, error) {
			gotIndex = index
			stop.Ref = domain.PersistedRef(101)
			return service.SyncResult{Stops: []domain.Stop{stop}}, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"index": 1,
		"stop": map[string]any{
			"id": nil, "order": 0, "duration": 15, "travelDuration": 5,
			"transportMode": "walk", "name": "Coffee", "travelAnnotation": "",
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/day-plans/5/stops", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, gotIndex)
}

// ---- DELETE /day-plans/{dayPlanID}/stops/{index} ---------------------------

func TestRemoveStop_200(t *testing.T) {
	var gotIndex int
	svc := &mockStopServicer{
		removeStop: func(_ context.Context, _ int64, index int) (service.SyncResult, error) {
			gotIndex = index
			return service.SyncResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/day-plans/5/stops/2", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, gotIndex)
}

func TestRemoveStop_400_NegativeIndex(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/day-plans/5/stops/-1", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, &mockStopServicer{}, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- POST /day-plans/{dayPlanID}/stops/{index}/move ------------------------

func TestMoveStop_200(t *testing.T) {
	var gotFrom, gotTo int
	svc := &mockStopServicer{
		moveStop: func(_ context.Context, _ int64, from, to int) (service.SyncResult, error) {
			gotFrom, gotTo = from, to
			return service.SyncResult{}, nil
		},
	}

	body := jsonBody(t, map[string]any{"to": 0})
	req := httptest.NewRequest(http.MethodPost, "/day-plans/5/stops/2/move", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, gotFrom)
	assert.Equal(t, 0, gotTo)
}

// ---- POST /day-plans/{dayPlanID}/stops/{index}/promote-place ---------------

func TestPromotePlace_200(t *testing.T) {
	placeID := int64(55)
	svc := &mockStopServicer{
		promotePlace: func(_ context.Context, id int64, index int) (service.SyncResult, error) {
			assert.Equal(t, int64(5), id)
			assert.Equal(t, 0, index)
			return service.SyncResult{Stops: []domain.Stop{{
				Ref: domain.PersistedRef(100), PlaceID: &placeID, Name: "Hidden ramen bar",
				Position: 1, Start: "10:00", End: "11:00", Duration: 60, Mode: domain.ModeWalk,
			}}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/day-plans/5/stops/0/promote-place", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp syncResponse
	decodeJSON(t, rec.Body, &resp)
	require.Len(t, resp.Stops, 1)
	require.NotNil(t, resp.Stops[0].PlaceID)
	assert.Equal(t, int64(55), *resp.Stops[0].PlaceID)
	assert.Nil(t, resp.Stops[0].Annotation, "no provisional place left after promotion")
}
