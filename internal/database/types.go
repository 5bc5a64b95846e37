package database

import "time"

// SessionRecord represents a row in the sessions table. A session groups the
// photos captured in one sitting. PhotoCount is denormalised and always
// refreshed from a live recount of the photos table.
type SessionRecord struct {
	ID         int64
	CreatedAt  time.Time
	Notes      string
	PhotoCount int64
	IsComplete bool
}

// SlotRecord represents a row in the slots table. Each slot is a named capture
// target (Face, Front, ...) in the ordered sequence a session walks through.
// Default slots are seeded on first run and cannot be deleted.
type SlotRecord struct {
	ID           int64
	Name         string
	DisplayOrder int64
	Icon         string
	IsDefault    bool
	IsActive     bool
	CreatedAt    time.Time
}

// PhotoRecord represents a row in the photos table. BlobPath and ThumbPath
// reference encrypted files owned exclusively by this row.
type PhotoRecord struct {
	ID         int64
	SessionID  int64
	SlotID     int64
	BlobPath   string
	ThumbPath  string
	CapturedAt time.Time
	Notes      string
}

// InsightRecord represents a row in the insights table. Insights are derived
// data and never required for session integrity.
type InsightRecord struct {
	ID         int64
	SessionID  int64
	Category   string
	Content    string
	Confidence float64
	CreatedAt  time.Time
}

// MeasurementRecord represents a row in the measurements table.
type MeasurementRecord struct {
	ID         int64
	SessionID  int64
	Kind       string
	Value      float64
	RecordedAt time.Time
}

// SessionDetailRecord is a consistent snapshot of a session with all of its
// child rows, read in a single transaction.
type SessionDetailRecord struct {
	Session      SessionRecord
	Photos       []PhotoRecord
	Insights     []InsightRecord
	Measurements []MeasurementRecord
}
