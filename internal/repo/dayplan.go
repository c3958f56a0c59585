package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/obrandt/wayplan/internal/domain"
	"github.com/obrandt/wayplan/internal/placement"
)

// DayPlanRepo defines the persistence operations for DayPlans, including the
// atomic application of a computed placement outcome.
type DayPlanRepo interface {
	// Create inserts a new day plan and returns the persisted record.
	// Attached creation (TripID and DayIndex set) fails with
	// domain.ErrConflict when the slot is already occupied.
	Create(ctx context.Context, plan domain.DayPlan) (domain.DayPlan, error)

	// GetByID retrieves a single day plan by primary key.
	// Returns domain.ErrNotFound if no plan with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.DayPlan, error)

	// ListByTrip returns a trip's attached plans ordered by day index.
	ListByTrip(ctx context.Context, tripID int64) ([]domain.DayPlan, error)

	// ListUnattached returns the holding area, newest first.
	ListUnattached(ctx context.Context) ([]domain.DayPlan, error)

	// Occupancy returns dayIndex -> planID for a trip's attached plans.
	Occupancy(ctx context.Context, tripID int64) (map[int]int64, error)

	// UpdateMeta overwrites a plan's name and memo.
	// Returns domain.ErrNotFound if the plan does not exist.
	UpdateMeta(ctx context.Context, plan domain.DayPlan) (domain.DayPlan, error)

	// Detach moves a plan out of its trip slot into the holding area.
	// Detaching an already-unattached plan is a no-op, not an error.
	Detach(ctx context.Context, id int64) error

	// DetachBeyond detaches every plan of the trip whose day index exceeds
	// dayCount. Used when a trip's day count shrinks: attached plans are
	// preserved in the holding area, never discarded.
	DetachBeyond(ctx context.Context, tripID int64, dayCount int) error

	// ApplyPlacement applies a resolver outcome in one transaction:
	// discards first, then detaches, then slot assignments in outcome order.
	ApplyPlacement(ctx context.Context, out placement.Outcome) error

	// Delete removes a plan and its stops (ON DELETE CASCADE).
	// Returns domain.ErrNotFound if the plan does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgDayPlanRepo is the Postgres implementation of DayPlanRepo.
type pgDayPlanRepo struct {
	db db
}

// NewDayPlanRepo constructs a DayPlanRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewDayPlanRepo(db db) DayPlanRepo {
	return &pgDayPlanRepo{db: db}
}

func (r *pgDayPlanRepo) Create(ctx context.Context, plan domain.DayPlan) (domain.DayPlan, error) {
	const q = `
		INSERT INTO day_plans (trip_id, day_index, name, memo)
		VALUES (@trip_id, @day_index, @name, @memo)
		RETURNING id, trip_id, day_index, name, memo, created_at, updated_at`

	args := pgx.NamedArgs{
		"trip_id":   plan.TripID, // nil becomes NULL (unattached)
		"day_index": plan.DayIndex,
		"name":      plan.Name,
		"memo":      plan.Memo,
	}

	result, err := scanDayPlan(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.DayPlan{}, fmt.Errorf("repo.DayPlanRepo.Create: %w: slot already occupied", domain.ErrConflict)
		}
		return domain.DayPlan{}, fmt.Errorf("repo.DayPlanRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDayPlanRepo) GetByID(ctx context.Context, id int64) (domain.DayPlan, error) {
	const q = `
		SELECT id, trip_id, day_index, name, memo, created_at, updated_at
		FROM day_plans
		WHERE id = @id`

	result, err := scanDayPlan(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.DayPlan{}, fmt.Errorf("repo.DayPlanRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDayPlanRepo) ListByTrip(ctx context.Context, tripID int64) ([]domain.DayPlan, error) {
	const q = `
		SELECT id, trip_id, day_index, name, memo, created_at, updated_at
		FROM day_plans
		WHERE trip_id = @trip_id
		ORDER BY day_index`

	return r.list(ctx, "ListByTrip", q, pgx.NamedArgs{"trip_id": tripID})
}

func (r *pgDayPlanRepo) ListUnattached(ctx context.Context) ([]domain.DayPlan, error) {
	const q = `
		SELECT id, trip_id, day_index, name, memo, created_at, updated_at
		FROM day_plans
		WHERE trip_id IS NULL
		ORDER BY updated_at DESC, id DESC`

	return r.list(ctx, "ListUnattached", q, pgx.NamedArgs{})
}

func (r *pgDayPlanRepo) Occupancy(ctx context.Context, tripID int64) (map[int]int64, error) {
	const q = `
		SELECT day_index, id
		FROM day_plans
		WHERE trip_id = @trip_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DayPlanRepo.Occupancy: %w", err)
	}
	defer rows.Close()

	occupancy := make(map[int]int64)
	for rows.Next() {
		var (
			dayIndex int
			planID   int64
		)
		if err := rows.Scan(&dayIndex, &planID); err != nil {
			return nil, fmt.Errorf("repo.DayPlanRepo.Occupancy: scan: %w", err)
		}
		occupancy[dayIndex] = planID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DayPlanRepo.Occupancy: rows: %w", err)
	}

	return occupancy, nil
}

func (r *pgDayPlanRepo) UpdateMeta(ctx context.Context, plan domain.DayPlan) (domain.DayPlan, error) {
	const q = `
		UPDATE day_plans
		SET name       = @name,
		    memo       = @memo,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, trip_id, day_index, name, memo, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":   plan.ID,
		"name": plan.Name,
		"memo": plan.Memo,
	}

	result, err := scanDayPlan(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DayPlan{}, fmt.Errorf("repo.DayPlanRepo.UpdateMeta: %w", err)
	}
	return result, nil
}

func (r *pgDayPlanRepo) Detach(ctx context.Context, id int64) error {
	const q = `
		UPDATE day_plans
		SET trip_id    = NULL,
		    day_index  = NULL,
		    updated_at = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DayPlanRepo.Detach: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DayPlanRepo.Detach: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgDayPlanRepo) DetachBeyond(ctx context.Context, tripID int64, dayCount int) error {
	const q = `
		UPDATE day_plans
		SET trip_id    = NULL,
		    day_index  = NULL,
		    updated_at = now()
		WHERE trip_id = @trip_id AND day_index > @day_count`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "day_count": dayCount}); err != nil {
		return fmt.Errorf("repo.DayPlanRepo.DetachBeyond: %w", err)
	}
	return nil
}

// ApplyPlacement applies a fully computed placement outcome atomically.
// Every moving plan's slot is cleared before any reassignment, so a SWAP or
// SHIFT never trips the UNIQUE (trip_id, day_index) constraint mid-flight;
// the constraint still backstops the final state.
func (r *pgDayPlanRepo) ApplyPlacement(ctx context.Context, out placement.Outcome) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.DayPlanRepo.ApplyPlacement: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, id := range out.Discard {
		if _, err := tx.Exec(ctx, `DELETE FROM day_plans WHERE id = @id`, pgx.NamedArgs{"id": id}); err != nil {
			return fmt.Errorf("repo.DayPlanRepo.ApplyPlacement: discard %d: %w", id, err)
		}
	}

	const detachQ = `
		UPDATE day_plans
		SET trip_id = NULL, day_index = NULL, updated_at = now()
		WHERE id = @id`
	for _, id := range out.Detach {
		if _, err := tx.Exec(ctx, detachQ, pgx.NamedArgs{"id": id}); err != nil {
			return fmt.Errorf("repo.DayPlanRepo.ApplyPlacement: detach %d: %w", id, err)
		}
	}

	const clearQ = `
		UPDATE day_plans
		SET trip_id = NULL, day_index = NULL
		WHERE id = @id`
	for _, a := range out.Attach {
		if _, err := tx.Exec(ctx, clearQ, pgx.NamedArgs{"id": a.PlanID}); err != nil {
			return fmt.Errorf("repo.DayPlanRepo.ApplyPlacement: clear %d: %w", a.PlanID, err)
		}
	}

	const attachQ = `
		UPDATE day_plans
		SET trip_id = @trip_id, day_index = @day_index, updated_at = now()
		WHERE id = @id`
	for _, a := range out.Attach {
		tag, err := tx.Exec(ctx, attachQ, pgx.NamedArgs{
			"id":        a.PlanID,
			"trip_id":   a.TripID,
			"day_index": a.DayIndex,
		})
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("repo.DayPlanRepo.ApplyPlacement: %w: slot (%d, %d) already occupied",
					domain.ErrConflict, a.TripID, a.DayIndex)
			}
			return fmt.Errorf("repo.DayPlanRepo.ApplyPlacement: attach %d: %w", a.PlanID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("repo.DayPlanRepo.ApplyPlacement: attach %d: %w", a.PlanID, domain.ErrNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.DayPlanRepo.ApplyPlacement: commit: %w", err)
	}
	return nil
}

func (r *pgDayPlanRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM day_plans WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DayPlanRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DayPlanRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgDayPlanRepo) list(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.DayPlan, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.DayPlanRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var plans []domain.DayPlan
	for rows.Next() {
		p, err := scanDayPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DayPlanRepo.%s: scan: %w", op, err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DayPlanRepo.%s: rows: %w", op, err)
	}

	return plans, nil
}

// scanDayPlan maps a single database row into a domain.DayPlan.
// trip_id and day_index are nullable and map to nil pointers when unattached.
func scanDayPlan(s scanner) (domain.DayPlan, error) {
	var p domain.DayPlan

	err := s.Scan(&p.ID, &p.TripID, &p.DayIndex, &p.Name, &p.Memo, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DayPlan{}, domain.ErrNotFound
		}
		return domain.DayPlan{}, err
	}

	return p, nil
}
