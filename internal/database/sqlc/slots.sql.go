package sqldb

import "context"

const listSlots = `SELECT id, name, display_order, icon, is_default, is_active, created_at FROM slots ORDER BY display_order ASC, id ASC`

func (q *Queries) ListSlots(ctx context.Context) ([]Slot, error) {
	return q.querySlots(ctx, listSlots)
}

const listActiveSlots = `SELECT id, name, display_order, icon, is_default, is_active, created_at FROM slots WHERE is_active = 1 ORDER BY display_order ASC, id ASC`

func (q *Queries) ListActiveSlots(ctx context.Context) ([]Slot, error) {
	return q.querySlots(ctx, listActiveSlots)
}

func (q *Queries) querySlots(ctx context.Context, query string) ([]Slot, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Slot
	for rows.Next() {
		var s Slot
		if err := rows.Scan(&s.ID, &s.Name, &s.DisplayOrder, &s.Icon, &s.IsDefault, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

const findSlotByID = `SELECT id, name, display_order, icon, is_default, is_active, created_at FROM slots WHERE id = ?`

func (q *Queries) FindSlotByID(ctx context.Context, id int64) (Slot, error) {
	row := q.db.QueryRowContext(ctx, findSlotByID, id)
	var s Slot
	err := row.Scan(&s.ID, &s.Name, &s.DisplayOrder, &s.Icon, &s.IsDefault, &s.IsActive, &s.CreatedAt)
	return s, err
}

const insertSlot = `INSERT INTO slots (name, display_order, icon, is_default, is_active) VALUES (?, ?, ?, ?, ?)`

type InsertSlotParams struct {
	Name         string
	DisplayOrder int64
	Icon         string
	IsDefault    int64
	IsActive     int64
}

func (q *Queries) InsertSlot(ctx context.Context, arg InsertSlotParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, insertSlot, arg.Name, arg.DisplayOrder, arg.Icon, arg.IsDefault, arg.IsActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const setSlotActive = `UPDATE slots SET is_active = ? WHERE id = ?`

type SetSlotActiveParams struct {
	IsActive int64
	ID       int64
}

func (q *Queries) SetSlotActive(ctx context.Context, arg SetSlotActiveParams) error {
	_, err := q.db.ExecContext(ctx, setSlotActive, arg.IsActive, arg.ID)
	return err
}

const updateSlotOrder = `UPDATE slots SET display_order = ? WHERE id = ?`

type UpdateSlotOrderParams struct {
	DisplayOrder int64
	ID           int64
}

func (q *Queries) UpdateSlotOrder(ctx context.Context, arg UpdateSlotOrderParams) error {
	_, err := q.db.ExecContext(ctx, updateSlotOrder, arg.DisplayOrder, arg.ID)
	return err
}

const renameSlot = `UPDATE slots SET name = ? WHERE id = ?`

type RenameSlotParams struct {
	Name string
	ID   int64
}

func (q *Queries) RenameSlot(ctx context.Context, arg RenameSlotParams) error {
	_, err := q.db.ExecContext(ctx, renameSlot, arg.Name, arg.ID)
	return err
}

const deleteSlotByID = `DELETE FROM slots WHERE id = ?`

func (q *Queries) DeleteSlotByID(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteSlotByID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const maxSlotOrder = `SELECT COALESCE(MAX(display_order), -1) FROM slots`

func (q *Queries) MaxSlotOrder(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, maxSlotOrder)
	var max int64
	err := row.Scan(&max)
	return max, err
}
