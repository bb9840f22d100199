package models

import "time"

type Report struct {
	ID          int       `json:"id"`
	Type        string    `json:"type"`
	Filename    *string   `json:"filename"`
	UploadedAt  time.Time `json:"uploaded_at"`
	ReportedFor string    `json:"reported_for"`
	Notes       string    `json:"notes"`
	CreatedBy   int       `json:"created_by"`
}
