package models

import "time"

// AuditLog mirrors the audit_logs table. No mutation path writes it
// yet; the table and model exist so that handlers can start recording
// actions without a schema change.
type AuditLog struct {
	ID         string
	TableName  string
	RecordID   string
	Action     string
	Performer  string
	OccurredAt time.Time
}
