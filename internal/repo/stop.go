package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/obrandt/wayplan/internal/codec"
	"github.com/obrandt/wayplan/internal/domain"
)

// StopRepo defines the persistence operations for Stops.
// Stops are exclusively owned by their day plan, so every operation is scoped
// by dayPlanID. Writes go through ReplaceForDay only: a day is always saved
// as a whole recomputed batch, never one stop at a time, so the stored list
// can never be half-consistent.
type StopRepo interface {
	// ListByDayPlan returns a day's stops ordered by position.
	ListByDayPlan(ctx context.Context, dayPlanID int64) ([]domain.Stop, error)

	// ReplaceForDay atomically replaces a day plan's entire stop list and
	// returns the authoritative persisted list, with database-assigned ids
	// for stops that were local placeholders. Input order is the stored
	// order; positions are written as 1..N.
	ReplaceForDay(ctx context.Context, dayPlanID int64, stops []domain.Stop) ([]domain.Stop, error)
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

const stopColumns = `id, day_plan_id, position, place_id, name,
	start_time, duration_min, end_time, travel_min, transport_mode,
	note, travel_note, created_at, updated_at`

func (r *pgStopRepo) ListByDayPlan(ctx context.Context, dayPlanID int64) ([]domain.Stop, error) {
	q := `
		SELECT ` + stopColumns + `
		FROM stops
		WHERE day_plan_id = @day_plan_id
		ORDER BY position`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"day_plan_id": dayPlanID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByDayPlan: %w", err)
	}
	defer rows.Close()

	var stops []domain.Stop
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StopRepo.ListByDayPlan: scan: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByDayPlan: rows: %w", err)
	}

	return stops, nil
}

func (r *pgStopRepo) ReplaceForDay(ctx context.Context, dayPlanID int64, stops []domain.Stop) ([]domain.Stop, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ReplaceForDay: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx,
		`DELETE FROM stops WHERE day_plan_id = @day_plan_id`,
		pgx.NamedArgs{"day_plan_id": dayPlanID},
	); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ReplaceForDay: clear: %w", err)
	}

	q := `
		INSERT INTO stops (day_plan_id, position, place_id, name,
			start_time, duration_min, end_time, travel_min, transport_mode,
			note, travel_note)
		VALUES (@day_plan_id, @position, @place_id, @name,
			@start_time, @duration_min, @end_time, @travel_min, @transport_mode,
			@note, @travel_note)
		RETURNING ` + stopColumns

	saved := make([]domain.Stop, 0, len(stops))
	for i, stop := range stops {
		args := pgx.NamedArgs{
			"day_plan_id":    dayPlanID,
			"position":       i + 1,
			"place_id":       stop.PlaceID,
			"name":           stop.Name,
			"start_time":     nullableClock(stop.Start),
			"duration_min":   stop.Duration,
			"end_time":       nullableClock(stop.End),
			"travel_min":     stop.Travel,
			"transport_mode": string(stop.Mode),
			"note":           codec.EncodeStay(stop.Note),
			"travel_note":    codec.EncodeTravel(stop.TravelNote),
		}

		s, err := scanStop(tx.QueryRow(ctx, q, args))
		if err != nil {
			return nil, fmt.Errorf("repo.StopRepo.ReplaceForDay: insert position %d: %w", i+1, err)
		}
		saved = append(saved, s)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ReplaceForDay: commit: %w", err)
	}
	return saved, nil
}

// nullableClock maps an unset "HH:MM" value to NULL.
func nullableClock(clock string) *string {
	if clock == "" {
		return nil
	}
	return &clock
}

// scanStop maps a single database row into a domain.Stop, decoding the two
// note columns back into their structured forms. This is the only place the
// annotation codec runs on the read path.
func scanStop(s scanner) (domain.Stop, error) {
	var (
		stop       domain.Stop
		id         int64
		start, end *string
		mode       string
		note       string
		travelNote string
	)

	err := s.Scan(&id, &stop.DayPlanID, &stop.Position, &stop.PlaceID, &stop.Name,
		&start, &stop.Duration, &end, &stop.Travel, &mode,
		&note, &travelNote, &stop.CreatedAt, &stop.UpdatedAt)
	if err != nil {
		return domain.Stop{}, err
	}

	stop.Ref = domain.PersistedRef(id)
	if start != nil {
		stop.Start = *start
	}
	if end != nil {
		stop.End = *end
	}
	stop.Mode = domain.TransportMode(mode)
	stop.Note = codec.DecodeStay(note)
	stop.TravelNote = codec.DecodeTravel(travelNote)

	return stop, nil
}
