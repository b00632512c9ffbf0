package repository

import (
	"database/sql"
	"fmt"
	"time"

	"famlink/internal/database"
	"famlink/internal/models"
)

// TaskRepository handles database operations for family tasks
type TaskRepository struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, family_id, creator_id, assignee_id, title, notes, due_at, done, created_at, updated_at`

// CreateTask creates a new task and returns it with its generated ID
func (r *TaskRepository) CreateTask(task *models.Task) (*models.Task, error) {
	query := `INSERT INTO tasks (family_id, creator_id, assignee_id, title, notes, due_at, done)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	id, err := r.db.ExecReturningID(query,
		task.FamilyID, task.CreatorID, nullableInt(task.AssigneeID),
		task.Title, task.Notes, nullableTime(task.DueAt), task.Done)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return r.GetTaskByID(id)
}

// GetTaskByID retrieves a task by ID, or nil if absent
func (r *TaskRepository) GetTaskByID(taskID int64) (*models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE id = ?"
	return scanTask(r.db.QueryRow(query, taskID))
}

// ListFamilyTasks retrieves all tasks in a family, newest first
func (r *TaskRepository) ListFamilyTasks(familyID int64) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE family_id = ? ORDER BY created_at DESC"
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTaskRows(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// UpdateTask updates a task's mutable fields
func (r *TaskRepository) UpdateTask(task *models.Task) error {
	query := `UPDATE tasks SET title = ?, notes = ?, assignee_id = ?, due_at = ?, done = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	_, err := r.db.Exec(query,
		task.Title, task.Notes, nullableInt(task.AssigneeID), nullableTime(task.DueAt), task.Done, task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// DeleteTask deletes a task by ID
func (r *TaskRepository) DeleteTask(taskID int64) error {
	if _, err := r.db.Exec("DELETE FROM tasks WHERE id = ?", taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func scanTask(row *sql.Row) (*models.Task, error) {
	var task models.Task
	var assignee sql.NullInt64
	var dueAt sql.NullTime

	err := row.Scan(
		&task.ID, &task.FamilyID, &task.CreatorID, &assignee,
		&task.Title, &task.Notes, &dueAt, &task.Done,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}

	if assignee.Valid {
		task.AssigneeID = &assignee.Int64
	}
	if dueAt.Valid {
		task.DueAt = &dueAt.Time
	}
	return &task, nil
}

func scanTaskRows(rows *sql.Rows) (*models.Task, error) {
	var task models.Task
	var assignee sql.NullInt64
	var dueAt sql.NullTime

	err := rows.Scan(
		&task.ID, &task.FamilyID, &task.CreatorID, &assignee,
		&task.Title, &task.Notes, &dueAt, &task.Done,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}

	if assignee.Valid {
		task.AssigneeID = &assignee.Int64
	}
	if dueAt.Valid {
		task.DueAt = &dueAt.Time
	}
	return &task, nil
}

func nullableInt(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableTime(v *time.Time) interface{} {
	if v == nil || v.IsZero() {
		return nil
	}
	return *v
}
