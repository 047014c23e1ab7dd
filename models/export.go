package models

import "time"

// ExportDocument is the artifact written by an export and read back by an import.
type ExportDocument struct {
	Tasks          []Task    `json:"tasks" yaml:"tasks" toml:"tasks" validate:"dive"`
	ExportDate     time.Time `json:"exportDate" yaml:"exportDate" toml:"exportDate" validate:"required"`
	TotalTasks     int       `json:"totalTasks" yaml:"totalTasks" toml:"totalTasks" validate:"min=0"`
	CompletedTasks int       `json:"completedTasks" yaml:"completedTasks" toml:"completedTasks" validate:"min=0"`
}

// NewExportDocument builds an export document from the given tasks.
func NewExportDocument(tasks []Task, now time.Time) ExportDocument {
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return ExportDocument{
		Tasks:          tasks,
		ExportDate:     now,
		TotalTasks:     len(tasks),
		CompletedTasks: completed,
	}
}
