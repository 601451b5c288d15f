package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/nugraharzk/room-booking-solution/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

const bookingColumns = `id, room_id, created_by_user_id, subject, start_time, end_time, status, created_at, status_changed_at`

type BookingRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewBookingRepo(db *dbpg.DB) *BookingRepository {
	return &BookingRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		id, roomID, userID         string
		subject                    sql.NullString
		start, end                 time.Time
		status                     string
		createdAt, statusChangedAt time.Time
	)
	if err := row.Scan(&id, &roomID, &userID, &subject, &start, &end, &status, &createdAt, &statusChangedAt); err != nil {
		return nil, err
	}
	return domain.RestoreBooking(
		id, roomID, userID, subject.String,
		start, end,
		domain.BookingStatus(status),
		createdAt, statusChangedAt,
	), nil
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (` + bookingColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := execQuery(
		ctx, r.db, r.strategy, query,
		b.ID(), b.RoomID(), b.CreatedByUserID(),
		nullString(b.Subject()),
		b.TimeRange().Start(), b.TimeRange().End(),
		b.Status(), b.CreatedAt(), b.StatusChangedAt(),
	)
	if err != nil {
		return mapPgError(fmt.Errorf("insert booking: %w", err))
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE id = $1`

	row, err := queryRow(ctx, r.db, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}

	return b, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings
			  SET start_time = $2, end_time = $3, status = $4, status_changed_at = $5
			  WHERE id = $1`
	res, err := execQuery(
		ctx, r.db, r.strategy, query,
		b.ID(), b.TimeRange().Start(), b.TimeRange().End(),
		b.Status(), b.StatusChangedAt(),
	)
	if err != nil {
		return mapPgError(fmt.Errorf("update booking: %w", err))
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("booking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrBookingNotFound
	}

	return nil
}

func (r *BookingRepository) HasOverlap(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error) {
	query := `SELECT EXISTS (
				SELECT 1 FROM bookings
				WHERE room_id = $1
				  AND status = ANY($2)
				  AND start_time < $4
				  AND end_time > $3
				  AND ($5::uuid IS NULL OR id <> $5::uuid)
			  )`

	row, err := queryRow(ctx, r.db, r.strategy, query, roomID, pq.Array(domain.BlockingStatuses), start, end, nullString(excludeID))
	if err != nil {
		return false, fmt.Errorf("check overlap: %w", err)
	}

	var exists bool
	if err = row.Scan(&exists); err != nil {
		return false, fmt.Errorf("scan overlap: %w", err)
	}

	return exists, nil
}

func (r *BookingRepository) ListOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE room_id = $1
			    AND status = ANY($2)
			    AND start_time < $4
			    AND end_time > $3
			    AND ($5::uuid IS NULL OR id <> $5::uuid)
			  ORDER BY start_time`

	rows, err := queryRows(ctx, r.db, r.strategy, query, roomID, pq.Array(domain.BlockingStatuses), start, end, nullString(excludeID))
	if err != nil {
		return nil, fmt.Errorf("list overlapping: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepository) ListByRoom(ctx context.Context, roomID string, from, to time.Time) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE room_id = $1
			    AND start_time >= $2
			    AND start_time < $3
			  ORDER BY start_time`

	rows, err := queryRows(ctx, r.db, r.strategy, query, roomID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list bookings by room: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepository) CompleteElapsed(ctx context.Context) ([]*domain.Booking, error) {
	query := `UPDATE bookings
			  SET status = $2, status_changed_at = NOW()
			  WHERE status = $1
			    AND end_time <= NOW()
			  RETURNING ` + bookingColumns

	rows, err := queryRows(
		ctx, r.db, r.strategy, query,
		domain.BookingStatusConfirmed, domain.BookingStatusCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("complete elapsed: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	var res []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		res = append(res, b)
	}

	return res, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
