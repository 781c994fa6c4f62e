package store

import (
	"fmt"
	"strconv"

	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/models"
)

var tasksHeader = []string{"level", "task", "description", "minPoints", "maxPoints"}

// taskCatalog is the CSV-seeded implementation of [TaskCatalog]. The table
// is loaded once at construction and held in memory; it is read-only for
// the rest of the process lifetime.
type taskCatalog struct {
	tasks []models.TaskDefinition
}

// NewTaskCatalog loads the task catalog from the CSV table at path. When
// the table is absent (first run), it is seeded with the default task set
// before loading.
func NewTaskCatalog(path string, logger *logger.Logger) (TaskCatalog, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}

	if rows == nil {
		logger.Info().Str("path", path).Msg("task catalog absent, seeding defaults")
		if err := writeTable(path, tasksHeader, seedTaskRows()); err != nil {
			return nil, err
		}
		if rows, err = readTable(path); err != nil {
			return nil, err
		}
	}

	tasks := make([]models.TaskDefinition, 0, len(rows))
	for _, row := range rows {
		task, err := decodeTaskRow(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	logger.Debug().Int("tasks", len(tasks)).Msg("task catalog loaded")
	return &taskCatalog{tasks: tasks}, nil
}

// All returns every task definition in catalog order.
func (c *taskCatalog) All() []models.TaskDefinition {
	return c.tasks
}

// ForLevel returns the definitions gated to exactly the given level, in
// catalog order (not sorted).
func (c *taskCatalog) ForLevel(level models.Level) []models.TaskDefinition {
	var out []models.TaskDefinition
	for _, task := range c.tasks {
		if task.Level == level {
			out = append(out, task)
		}
	}
	return out
}

// FindByName retrieves the definition with the given name, or
// [ErrTaskNotFound].
func (c *taskCatalog) FindByName(name string) (models.TaskDefinition, error) {
	for _, task := range c.tasks {
		if task.Name == name {
			return task, nil
		}
	}
	return models.TaskDefinition{}, ErrTaskNotFound
}

func decodeTaskRow(row []string) (models.TaskDefinition, error) {
	if len(row) < 5 {
		return models.TaskDefinition{}, fmt.Errorf("%w: tasks row has %d columns", ErrMalformedRow, len(row))
	}

	minPoints, err := strconv.Atoi(row[3])
	if err != nil {
		return models.TaskDefinition{}, fmt.Errorf("%w: minPoints column: %w", ErrMalformedRow, err)
	}
	maxPoints, err := strconv.Atoi(row[4])
	if err != nil {
		return models.TaskDefinition{}, fmt.Errorf("%w: maxPoints column: %w", ErrMalformedRow, err)
	}
	if minPoints < 0 || maxPoints < minPoints {
		return models.TaskDefinition{}, fmt.Errorf("%w: invalid point range [%d, %d]", ErrMalformedRow, minPoints, maxPoints)
	}

	level := models.Level(row[0])
	if !level.Valid() {
		return models.TaskDefinition{}, fmt.Errorf("%w: unknown level %q", ErrMalformedRow, row[0])
	}

	return models.TaskDefinition{
		Level:       level,
		Name:        row[1],
		Description: row[2],
		MinPoints:   minPoints,
		MaxPoints:   maxPoints,
	}, nil
}
