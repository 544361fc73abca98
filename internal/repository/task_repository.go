package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/croftview/fieldops-backend-go/internal/database"
	"github.com/croftview/fieldops-backend-go/internal/models"
)

// TaskRepository handles database operations for field-operation tasks
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, field_id, season_id, crop_id, kind, planned_date, execution_date,
	creation_flow_hint, created_at, updated_at`

func scanTask(row interface{ Scan(...interface{}) error }) (models.Task, error) {
	var t models.Task
	var seasonID, cropID, planned, executed, hint sql.NullString
	err := row.Scan(&t.ID, &t.FieldID, &seasonID, &cropID, &t.Kind,
		&planned, &executed, &hint, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	if seasonID.Valid {
		t.SeasonID = &seasonID.String
	}
	if cropID.Valid {
		t.CropID = &cropID.String
	}
	if hint.Valid {
		t.CreationFlowHint = &hint.String
	}
	t.PlannedDate = parseInstant(planned)
	t.ExecutionDate = parseInstant(executed)
	return t, nil
}

// Create inserts a task together with its recipe entries
func (r *TaskRepository) Create(t models.Task) error {
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO tasks
			(id, field_id, season_id, crop_id, kind, planned_date, execution_date, creation_flow_hint)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.FieldID, nullString(t.SeasonID), nullString(t.CropID), t.Kind,
			formatInstant(t.PlannedDate), formatInstant(t.ExecutionDate), nullString(t.CreationFlowHint))
		if err != nil {
			return fmt.Errorf("failed to insert task: %w", err)
		}
		return insertRecipeEntries(tx, t.ID, t.RecipeEntries)
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByID retrieves a task with its recipe entries, nil when absent
func (r *TaskRepository) GetByID(id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := scanTask(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	tasks := []models.Task{t}
	if err := r.attachRecipeEntries(tasks); err != nil {
		return nil, err
	}
	return &tasks[0], nil
}

// List retrieves tasks with filtering and pagination. From/To bound the
// effective date (execution date, else planned date) as civil dates.
func (r *TaskRepository) List(filter models.TaskFilter) ([]models.Task, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.FieldID != "" {
		conditions = append(conditions, "field_id = ?")
		args = append(args, filter.FieldID)
	}
	if filter.SeasonID != "" {
		conditions = append(conditions, "season_id = ?")
		args = append(args, filter.SeasonID)
	}
	if filter.CropID != "" {
		conditions = append(conditions, "crop_id = ?")
		args = append(args, filter.CropID)
	}
	if filter.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, filter.Kind)
	}
	if filter.From != "" {
		conditions = append(conditions, "date(COALESCE(execution_date, planned_date)) >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		conditions = append(conditions, "date(COALESCE(execution_date, planned_date)) <= ?")
		args = append(args, filter.To)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM tasks`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	page, pageSize := clampPage(filter.Page, filter.PageSize)
	query := `SELECT ` + taskColumns + ` FROM tasks` + where +
		` ORDER BY COALESCE(execution_date, planned_date) IS NULL, COALESCE(execution_date, planned_date), id
		 LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	rows.Close()

	if err := r.attachRecipeEntries(tasks); err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListSprayingByFields retrieves every spraying task of the given
// fields, unpaginated. Sequencing needs whole (field, season) groups,
// not just the rows visible on one page.
func (r *TaskRepository) ListSprayingByFields(fieldIDs []string) ([]models.Task, error) {
	if len(fieldIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(fieldIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, 0, len(fieldIDs)+1)
	args = append(args, models.TaskKindSpraying)
	for _, id := range fieldIDs {
		args = append(args, id)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE kind = ? AND field_id IN (` + placeholders + `) ORDER BY id`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query spraying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	rows.Close()

	if err := r.attachRecipeEntries(tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

// UpdatePlannedDate updates a task's planned date; nil clears it
func (r *TaskRepository) UpdatePlannedDate(id string, planned *time.Time) (bool, error) {
	res, err := r.db.Exec(
		`UPDATE tasks SET planned_date = ?, updated_at = datetime('now') WHERE id = ?`,
		formatInstant(planned), id)
	if err != nil {
		return false, fmt.Errorf("failed to update planned date: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update planned date: %w", err)
	}
	return n > 0, nil
}

// Delete removes a task and its recipe entries
func (r *TaskRepository) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return n > 0, nil
}

func insertRecipeEntries(tx *sql.Tx, taskID string, entries []models.RecipeEntry) error {
	stmt, err := tx.Prepare(`INSERT INTO recipe_entries (task_id, position, product_id) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare recipe insert: %w", err)
	}
	defer stmt.Close()

	for i, entry := range entries {
		if _, err := stmt.Exec(taskID, i, nullString(entry.ProductID)); err != nil {
			return fmt.Errorf("failed to insert recipe entry %d: %w", i, err)
		}
	}
	return nil
}

func (r *TaskRepository) attachRecipeEntries(tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[string]*models.Task, len(tasks))
	placeholders := make([]string, 0, len(tasks))
	args := make([]interface{}, 0, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
		placeholders = append(placeholders, "?")
		args = append(args, tasks[i].ID)
	}

	query := `SELECT task_id, product_id FROM recipe_entries
		WHERE task_id IN (` + strings.Join(placeholders, ",") + `) ORDER BY task_id, position`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return fmt.Errorf("failed to query recipe entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID string
		var productID sql.NullString
		if err := rows.Scan(&taskID, &productID); err != nil {
			return fmt.Errorf("failed to scan recipe entry: %w", err)
		}
		entry := models.RecipeEntry{}
		if productID.Valid {
			entry.ProductID = &productID.String
		}
		if t, ok := byID[taskID]; ok {
			t.RecipeEntries = append(t.RecipeEntries, entry)
		}
	}

	return nil
}

func formatInstant(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseInstant(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		// Unparseable instants behave like absent ones downstream.
		return nil
	}
	return &t
}
