package sqldb

import "context"

const deleteAllPhotos = `DELETE FROM photos`

func (q *Queries) DeleteAllPhotos(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllPhotos)
	return err
}

const deleteAllInsights = `DELETE FROM insights`

func (q *Queries) DeleteAllInsights(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllInsights)
	return err
}

const deleteAllMeasurements = `DELETE FROM measurements`

func (q *Queries) DeleteAllMeasurements(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllMeasurements)
	return err
}

const deleteAllSessions = `DELETE FROM sessions`

func (q *Queries) DeleteAllSessions(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllSessions)
	return err
}
