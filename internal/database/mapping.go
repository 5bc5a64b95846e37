package database

import (
	sqldb "github.com/bodyvault/bodyvault/internal/database/sqlc"
)

func mapSessionRow(row sqldb.Session) SessionRecord {
	return SessionRecord{
		ID:         row.ID,
		CreatedAt:  optionalTime(row.CreatedAt),
		Notes:      optionalString(row.Notes),
		PhotoCount: row.PhotoCount,
		IsComplete: row.IsComplete != 0,
	}
}

func mapSlotRow(row sqldb.Slot) SlotRecord {
	return SlotRecord{
		ID:           row.ID,
		Name:         row.Name,
		DisplayOrder: row.DisplayOrder,
		Icon:         row.Icon,
		IsDefault:    row.IsDefault != 0,
		IsActive:     row.IsActive != 0,
		CreatedAt:    optionalTime(row.CreatedAt),
	}
}

func mapPhotoRow(row sqldb.Photo) PhotoRecord {
	return PhotoRecord{
		ID:         row.ID,
		SessionID:  row.SessionID,
		SlotID:     row.SlotID,
		BlobPath:   row.BlobPath,
		ThumbPath:  optionalString(row.ThumbPath),
		CapturedAt: optionalTime(row.CapturedAt),
		Notes:      optionalString(row.Notes),
	}
}

func mapInsightRow(row sqldb.Insight) InsightRecord {
	return InsightRecord{
		ID:         row.ID,
		SessionID:  row.SessionID,
		Category:   row.Category,
		Content:    row.Content,
		Confidence: row.Confidence,
		CreatedAt:  optionalTime(row.CreatedAt),
	}
}

func mapMeasurementRow(row sqldb.Measurement) MeasurementRecord {
	return MeasurementRecord{
		ID:         row.ID,
		SessionID:  row.SessionID,
		Kind:       row.Kind,
		Value:      row.Value,
		RecordedAt: optionalTime(row.RecordedAt),
	}
}
