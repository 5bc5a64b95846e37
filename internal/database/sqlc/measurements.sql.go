package sqldb

import "context"

const insertMeasurement = `INSERT INTO measurements (session_id, kind, value) VALUES (?, ?, ?)`

type InsertMeasurementParams struct {
	SessionID int64
	Kind      string
	Value     float64
}

func (q *Queries) InsertMeasurement(ctx context.Context, arg InsertMeasurementParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, insertMeasurement, arg.SessionID, arg.Kind, arg.Value)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const listMeasurementsBySession = `SELECT id, session_id, kind, value, recorded_at FROM measurements WHERE session_id = ? ORDER BY recorded_at ASC, id ASC`

func (q *Queries) ListMeasurementsBySession(ctx context.Context, sessionID int64) ([]Measurement, error) {
	rows, err := q.db.QueryContext(ctx, listMeasurementsBySession, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Measurement
	for rows.Next() {
		var m Measurement
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Kind, &m.Value, &m.RecordedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

const deleteMeasurementByID = `DELETE FROM measurements WHERE id = ?`

func (q *Queries) DeleteMeasurementByID(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteMeasurementByID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
