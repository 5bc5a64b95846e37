package sqldb

import "context"

const insertInsight = `INSERT INTO insights (session_id, category, content, confidence) VALUES (?, ?, ?, ?)`

type InsertInsightParams struct {
	SessionID  int64
	Category   string
	Content    string
	Confidence float64
}

func (q *Queries) InsertInsight(ctx context.Context, arg InsertInsightParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, insertInsight, arg.SessionID, arg.Category, arg.Content, arg.Confidence)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const listInsightsBySession = `SELECT id, session_id, category, content, confidence, created_at FROM insights WHERE session_id = ? ORDER BY created_at DESC, id DESC`

func (q *Queries) ListInsightsBySession(ctx context.Context, sessionID int64) ([]Insight, error) {
	rows, err := q.db.QueryContext(ctx, listInsightsBySession, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Insight
	for rows.Next() {
		var i Insight
		if err := rows.Scan(&i.ID, &i.SessionID, &i.Category, &i.Content, &i.Confidence, &i.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, i)
	}
	return result, rows.Err()
}

const listRecentInsights = `SELECT id, session_id, category, content, confidence, created_at FROM insights ORDER BY created_at DESC, id DESC LIMIT ?`

func (q *Queries) ListRecentInsights(ctx context.Context, limit int64) ([]Insight, error) {
	rows, err := q.db.QueryContext(ctx, listRecentInsights, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Insight
	for rows.Next() {
		var i Insight
		if err := rows.Scan(&i.ID, &i.SessionID, &i.Category, &i.Content, &i.Confidence, &i.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, i)
	}
	return result, rows.Err()
}

const deleteInsightByID = `DELETE FROM insights WHERE id = ?`

func (q *Queries) DeleteInsightByID(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteInsightByID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
