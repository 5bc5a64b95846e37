package sqldb

import (
	"context"
	"database/sql"
)

const insertPhoto = `INSERT INTO photos (session_id, slot_id, blob_path, thumb_path, captured_at, notes) VALUES (?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP), ?)`

type InsertPhotoParams struct {
	SessionID  int64
	SlotID     int64
	BlobPath   string
	ThumbPath  sql.NullString
	CapturedAt sql.NullTime
	Notes      sql.NullString
}

func (q *Queries) InsertPhoto(ctx context.Context, arg InsertPhotoParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, insertPhoto, arg.SessionID, arg.SlotID, arg.BlobPath, arg.ThumbPath, arg.CapturedAt, arg.Notes)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const findPhotoByID = `SELECT id, session_id, slot_id, blob_path, thumb_path, captured_at, notes FROM photos WHERE id = ?`

func (q *Queries) FindPhotoByID(ctx context.Context, id int64) (Photo, error) {
	row := q.db.QueryRowContext(ctx, findPhotoByID, id)
	var p Photo
	err := row.Scan(&p.ID, &p.SessionID, &p.SlotID, &p.BlobPath, &p.ThumbPath, &p.CapturedAt, &p.Notes)
	return p, err
}

const listPhotosBySession = `SELECT id, session_id, slot_id, blob_path, thumb_path, captured_at, notes FROM photos WHERE session_id = ? ORDER BY captured_at ASC, id ASC`

func (q *Queries) ListPhotosBySession(ctx context.Context, sessionID int64) ([]Photo, error) {
	return q.queryPhotos(ctx, listPhotosBySession, sessionID)
}

const listPhotosBySlot = `SELECT id, session_id, slot_id, blob_path, thumb_path, captured_at, notes FROM photos WHERE slot_id = ? ORDER BY captured_at ASC, id ASC`

func (q *Queries) ListPhotosBySlot(ctx context.Context, slotID int64) ([]Photo, error) {
	return q.queryPhotos(ctx, listPhotosBySlot, slotID)
}

func (q *Queries) queryPhotos(ctx context.Context, query string, args ...any) ([]Photo, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.SessionID, &p.SlotID, &p.BlobPath, &p.ThumbPath, &p.CapturedAt, &p.Notes); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

const findPhotoBySessionAndSlot = `SELECT id, session_id, slot_id, blob_path, thumb_path, captured_at, notes FROM photos WHERE session_id = ? AND slot_id = ? ORDER BY captured_at DESC, id DESC LIMIT 1`

type FindPhotoBySessionAndSlotParams struct {
	SessionID int64
	SlotID    int64
}

func (q *Queries) FindPhotoBySessionAndSlot(ctx context.Context, arg FindPhotoBySessionAndSlotParams) (Photo, error) {
	row := q.db.QueryRowContext(ctx, findPhotoBySessionAndSlot, arg.SessionID, arg.SlotID)
	var p Photo
	err := row.Scan(&p.ID, &p.SessionID, &p.SlotID, &p.BlobPath, &p.ThumbPath, &p.CapturedAt, &p.Notes)
	return p, err
}

const deletePhotoByID = `DELETE FROM photos WHERE id = ?`

func (q *Queries) DeletePhotoByID(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deletePhotoByID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countPhotosBySession = `SELECT COUNT(*) FROM photos WHERE session_id = ?`

func (q *Queries) CountPhotosBySession(ctx context.Context, sessionID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPhotosBySession, sessionID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listAllBlobPaths = `SELECT blob_path, thumb_path FROM photos`

type ListAllBlobPathsRow struct {
	BlobPath  string
	ThumbPath sql.NullString
}

func (q *Queries) ListAllBlobPaths(ctx context.Context) ([]ListAllBlobPathsRow, error) {
	rows, err := q.db.QueryContext(ctx, listAllBlobPaths)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []ListAllBlobPathsRow
	for rows.Next() {
		var r ListAllBlobPathsRow
		if err := rows.Scan(&r.BlobPath, &r.ThumbPath); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
