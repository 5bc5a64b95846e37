package sqldb

import "database/sql"

// Session mirrors a row in the sessions table.
type Session struct {
	ID         int64
	CreatedAt  sql.NullTime
	Notes      sql.NullString
	PhotoCount int64
	IsComplete int64
}

// Slot mirrors a row in the slots table.
type Slot struct {
	ID           int64
	Name         string
	DisplayOrder int64
	Icon         string
	IsDefault    int64
	IsActive     int64
	CreatedAt    sql.NullTime
}

// Photo mirrors a row in the photos table.
type Photo struct {
	ID         int64
	SessionID  int64
	SlotID     int64
	BlobPath   string
	ThumbPath  sql.NullString
	CapturedAt sql.NullTime
	Notes      sql.NullString
}

// Insight mirrors a row in the insights table.
type Insight struct {
	ID         int64
	SessionID  int64
	Category   string
	Content    string
	Confidence float64
	CreatedAt  sql.NullTime
}

// Measurement mirrors a row in the measurements table.
type Measurement struct {
	ID         int64
	SessionID  int64
	Kind       string
	Value      float64
	RecordedAt sql.NullTime
}
