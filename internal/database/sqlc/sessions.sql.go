package sqldb

import (
	"context"
	"database/sql"
)

const insertSession = `INSERT INTO sessions (notes) VALUES (?)`

func (q *Queries) InsertSession(ctx context.Context, notes sql.NullString) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertSession, notes)
}

const findSessionByID = `SELECT id, created_at, notes, photo_count, is_complete FROM sessions WHERE id = ?`

func (q *Queries) FindSessionByID(ctx context.Context, id int64) (Session, error) {
	row := q.db.QueryRowContext(ctx, findSessionByID, id)
	var s Session
	err := row.Scan(&s.ID, &s.CreatedAt, &s.Notes, &s.PhotoCount, &s.IsComplete)
	return s, err
}

const listSessions = `SELECT id, created_at, notes, photo_count, is_complete FROM sessions ORDER BY created_at DESC, id DESC`

func (q *Queries) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := q.db.QueryContext(ctx, listSessions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.Notes, &s.PhotoCount, &s.IsComplete); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

const setSessionComplete = `UPDATE sessions SET is_complete = ? WHERE id = ?`

type SetSessionCompleteParams struct {
	IsComplete int64
	ID         int64
}

func (q *Queries) SetSessionComplete(ctx context.Context, arg SetSessionCompleteParams) error {
	_, err := q.db.ExecContext(ctx, setSessionComplete, arg.IsComplete, arg.ID)
	return err
}

const updateSessionNotes = `UPDATE sessions SET notes = ? WHERE id = ?`

type UpdateSessionNotesParams struct {
	Notes sql.NullString
	ID    int64
}

func (q *Queries) UpdateSessionNotes(ctx context.Context, arg UpdateSessionNotesParams) error {
	_, err := q.db.ExecContext(ctx, updateSessionNotes, arg.Notes, arg.ID)
	return err
}

const updateSessionPhotoCount = `UPDATE sessions SET photo_count = ? WHERE id = ?`

type UpdateSessionPhotoCountParams struct {
	PhotoCount int64
	ID         int64
}

func (q *Queries) UpdateSessionPhotoCount(ctx context.Context, arg UpdateSessionPhotoCountParams) error {
	_, err := q.db.ExecContext(ctx, updateSessionPhotoCount, arg.PhotoCount, arg.ID)
	return err
}

const deleteSessionByID = `DELETE FROM sessions WHERE id = ?`

func (q *Queries) DeleteSessionByID(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteSessionByID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
