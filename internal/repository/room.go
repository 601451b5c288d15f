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

const roomColumns = `id, name, location, capacity, is_active, created_at, updated_at`

type RoomRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewRoomRepo(db *dbpg.DB) *RoomRepository {
	return &RoomRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var (
		id, name             string
		location             sql.NullString
		capacity             int
		isActive             bool
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &location, &capacity, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return domain.RestoreRoom(id, name, location.String, capacity, isActive, createdAt, updatedAt), nil
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `INSERT INTO rooms (` + roomColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := execQuery(
		ctx, r.db, r.strategy, query,
		room.ID(), room.Name(), nullString(room.Location()),
		room.Capacity(), room.IsActive(), room.CreatedAt(), room.UpdatedAt(),
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrRoomNameTaken
		}
		return fmt.Errorf("insert room: %w", err)
	}

	return nil
}

func (r *RoomRepository) getBy(ctx context.Context, query string, arg any) (*domain.Room, error) {
	row, err := queryRow(ctx, r.db, r.strategy, query, arg)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	room, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("scan room: %w", err)
	}

	return room, nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	query := `SELECT ` + roomColumns + `
			  FROM rooms
			  WHERE id = $1`
	return r.getBy(ctx, query, id)
}

// GetForUpdate locks the room row for the rest of the transaction.
// Concurrent check-and-write sequences for the same room queue up here,
// which closes the window between the overlap check and the insert.
func (r *RoomRepository) GetForUpdate(ctx context.Context, id string) (*domain.Room, error) {
	query := `SELECT ` + roomColumns + `
			  FROM rooms
			  WHERE id = $1
			  FOR UPDATE`
	return r.getBy(ctx, query, id)
}

func (r *RoomRepository) GetByName(ctx context.Context, name string) (*domain.Room, error) {
	query := `SELECT ` + roomColumns + `
			  FROM rooms
			  WHERE lower(name) = lower($1)`
	return r.getBy(ctx, query, name)
}

func (r *RoomRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (
				SELECT 1 FROM rooms WHERE lower(name) = lower($1)
			  )`

	row, err := queryRow(ctx, r.db, r.strategy, query, name)
	if err != nil {
		return false, fmt.Errorf("check room name: %w", err)
	}

	var exists bool
	if err = row.Scan(&exists); err != nil {
		return false, fmt.Errorf("scan room name check: %w", err)
	}

	return exists, nil
}

func (r *RoomRepository) ListActive(ctx context.Context) ([]*domain.Room, error) {
	query := `SELECT ` + roomColumns + `
			  FROM rooms
			  WHERE is_active
			  ORDER BY name`

	rows, err := queryRows(ctx, r.db, r.strategy, query)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var res []*domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		res = append(res, room)
	}

	return res, rows.Err()
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	query := `UPDATE rooms
			  SET name = $2, location = $3, capacity = $4, is_active = $5, updated_at = $6
			  WHERE id = $1`
	res, err := execQuery(
		ctx, r.db, r.strategy, query,
		room.ID(), room.Name(), nullString(room.Location()),
		room.Capacity(), room.IsActive(), room.UpdatedAt(),
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrRoomNameTaken
		}
		return fmt.Errorf("update room: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("room rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRoomNotFound
	}

	return nil
}
