package models

import "time"

const (
	ProjectPlanned   = "Planned"
	ProjectOngoing   = "Ongoing"
	ProjectCompleted = "Completed"
)

type Project struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Details   string     `json:"details"`
	Status    string     `json:"status"`
	Filename  *string    `json:"filename"`
	CreatedBy int        `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}
