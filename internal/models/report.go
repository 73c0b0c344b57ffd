package models

import "time"

// ReportTarget discriminates what a report points at.
type ReportTarget string

const (
	ReportTargetListing ReportTarget = "listing"
	ReportTargetUser    ReportTarget = "user"
)

// ReportSeverity is the reporter-assigned weight of a report.
type ReportSeverity string

const (
	SeverityLow    ReportSeverity = "low"
	SeverityMedium ReportSeverity = "medium"
	SeverityHigh   ReportSeverity = "high"
)

// ReportStatus is the moderation state of a report. Reports terminate via an
// admin decision and are never deleted.
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

// Report is a viewer complaint against a listing or a user. TargetName and
// TargetImage are cached at creation time so the report stays reviewable
// even when the target is absent from the reviewer's listing pool.
type Report struct {
	ID          string         `json:"id"`
	Target      ReportTarget   `json:"target"`
	TargetID    string         `json:"target_id"`
	TargetName  string         `json:"target_name"`
	TargetImage string         `json:"target_image,omitempty"`
	Reason      string         `json:"reason"`
	Severity    ReportSeverity `json:"severity"`
	Status      ReportStatus   `json:"status"`
	ReporterID  string         `json:"reporter_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	ResolvedAt  *time.Time     `json:"resolved_at,omitempty"`
}
