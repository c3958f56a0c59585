package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/obrandt/wayplan/internal/handler"
)

// newHTTPHandler wires a Server with the given mocks into the chi router.
// This mirrors exactly how main.go wires it in production. Pass nil for the
// servicers a test never reaches.
func newHTTPHandler(trips handler.TripServicer, plans handler.DayPlanServicer, stops handler.StopServicer, places handler.PlaceServicer, export handler.ExportServicer) http.Handler {
	return handler.NewServer(trips, plans, stops, places, export).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decodeJSON unmarshals a response body into out, failing the test on error.
func decodeJSON(t *testing.T, body *bytes.Buffer, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(out))
}
