// Package handler — export.go implements GET /export.
// Returns every trip, day plan, and stop as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/obrandt/wayplan/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "trip_start_date",
	"day_index", "day_name",
	"stop_name", "start_time", "end_time",
	"duration_min", "travel_min", "transport_mode", "notes",
}

// exportRow is the JSON wire form of one flat export row. Empty stop and plan
// fields are omitted so rows for bare trips stay small.
type exportRow struct {
	TripID        int64  `json:"trip_id"`
	TripName      string `json:"trip_name"`
	TripStartDate string `json:"trip_start_date"`
	DayIndex      int    `json:"day_index,omitempty"`
	DayName       string `json:"day_name,omitempty"`
	StopName      string `json:"stop_name,omitempty"`
	StartTime     string `json:"start_time,omitempty"`
	EndTime       string `json:"end_time,omitempty"`
	Duration      int    `json:"duration_min,omitempty"`
	Travel        int    `json:"travel_min,omitempty"`
	Mode          string `json:"transport_mode,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// GetExport handles GET /export.
// It returns a flat table with one row per stop, plus one bare row for every
// trip or plan that has nothing beneath it. Use ?format=csv to receive CSV.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.export.Export(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}

	out := make([]exportRow, len(rows))
	for i, row := range rows {
		out[i] = exportRow{
			TripID:        row.TripID,
			TripName:      row.TripName,
			TripStartDate: row.TripStartDate,
			DayIndex:      row.DayIndex,
			DayName:       row.DayName,
			StopName:      row.StopName,
			StartTime:     row.StartTime,
			EndTime:       row.EndTime,
			Duration:      row.Duration,
			Travel:        row.Travel,
			Mode:          string(row.Mode),
			Notes:         row.Notes,
		}
	}
	respondJSON(w, http.StatusOK, out)
}

// writeCSV encodes the export rows as CSV with a fixed header row.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — writes into a bytes.Buffer never fail.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(csvRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="wayplan-export.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("handler: writing csv export", "error", err)
	}
}

// csvRecord encodes one export row as a flat string slice.
// Zero day indices (bare trip rows) are encoded as empty strings.
func csvRecord(row domain.ExportRow) []string {
	dayIndex := ""
	if row.DayIndex > 0 {
		dayIndex = strconv.Itoa(row.DayIndex)
	}
	return []string{
		strconv.FormatInt(row.TripID, 10),
		row.TripName,
		row.TripStartDate,
		dayIndex,
		row.DayName,
		row.StopName,
		row.StartTime,
		row.EndTime,
		strconv.Itoa(row.Duration),
		strconv.Itoa(row.Travel),
		string(row.Mode),
		row.Notes,
	}
}
