package cmd

import (
	"github.com/josephgoksu/TaskDeck/internal/task"
	"github.com/josephgoksu/TaskDeck/models"
)

type listResponse struct {
	Filter task.Filter   `json:"filter"`
	Query  string        `json:"query,omitempty"`
	Tasks  []models.Task `json:"tasks"`
	Stats  task.Stats    `json:"stats"`
}

type themeResponse struct {
	Theme string `json:"theme"`
}

type versionResponse struct {
	Version string `json:"version"`
}
