package service

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/phenology"
	"github.com/croftview/fieldops-backend-go/internal/repository"
	"github.com/croftview/fieldops-backend-go/internal/spraying"
)

// TaskService handles business logic for field-operation tasks. Derived
// spray sequences and growth-stage badges are recomputed from current
// data on every read, never persisted.
type TaskService struct {
	taskRepo    *repository.TaskRepository
	fieldRepo   *repository.FieldRepository
	seasonRepo  *repository.SeasonRepository
	productRepo *repository.ProductRepository
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo *repository.TaskRepository, fieldRepo *repository.FieldRepository,
	seasonRepo *repository.SeasonRepository, productRepo *repository.ProductRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		fieldRepo:   fieldRepo,
		seasonRepo:  seasonRepo,
		productRepo: productRepo,
	}
}

// CreateTaskRequest carries the caller-supplied task data
type CreateTaskRequest struct {
	FieldID          string               `json:"fieldId" binding:"required"`
	SeasonID         *string              `json:"seasonId"`
	CropID           *string              `json:"cropId"`
	Kind             string               `json:"kind" binding:"required"`
	PlannedDate      *time.Time           `json:"plannedDate"`
	ExecutionDate    *time.Time           `json:"executionDate"`
	CreationFlowHint *string              `json:"creationFlowHint"`
	RecipeEntries    []models.RecipeEntry `json:"recipeEntries"`
}

// Create stores a new task with a generated id, nil when the field is
// unknown
func (s *TaskService) Create(req CreateTaskRequest) (*models.Task, error) {
	field, err := s.fieldRepo.GetByID(req.FieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to check field: %w", err)
	}
	if field == nil {
		return nil, nil
	}

	task := models.Task{
		ID:               uuid.NewString(),
		FieldID:          req.FieldID,
		SeasonID:         req.SeasonID,
		CropID:           req.CropID,
		Kind:             req.Kind,
		PlannedDate:      req.PlannedDate,
		ExecutionDate:    req.ExecutionDate,
		CreationFlowHint: req.CreationFlowHint,
		RecipeEntries:    req.RecipeEntries,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return s.taskRepo.GetByID(task.ID)
}

// List retrieves tasks with filtering and pagination, each overlaid
// with its herbicide classification, spray sequence and growth-stage
// badge
func (s *TaskService) List(filter models.TaskFilter) (*models.TasksResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 500 {
		filter.PageSize = 500
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	views, err := s.buildViews(tasks)
	if err != nil {
		return nil, err
	}

	return &models.TasksResponse{
		Data:       views,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}, nil
}

// Get retrieves a single task view by id, nil when absent
func (s *TaskService) Get(id string) (*models.TaskView, error) {
	task, err := s.taskRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}
	views, err := s.buildViews([]models.Task{*task})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// UpdatePlannedDate edits a task's planned date; sequences and badges
// re-derive on the next read. False when the task does not exist.
func (s *TaskService) UpdatePlannedDate(id string, planned *time.Time) (bool, error) {
	return s.taskRepo.UpdatePlannedDate(id, planned)
}

// Delete removes a task; false when the task does not exist
func (s *TaskService) Delete(id string) (bool, error) {
	return s.taskRepo.Delete(id)
}

// StageIndexOptions returns the distinct growth-stage badges across all
// tasks matching the filter, sorted numerically for selection lists.
func (s *TaskService) StageIndexOptions(filter models.TaskFilter) ([]string, error) {
	filter.Page = 1
	filter.PageSize = 500

	seen := make(map[string]struct{})
	var options []string
	for {
		resp, err := s.List(filter)
		if err != nil {
			return nil, err
		}
		for _, view := range resp.Data {
			if view.GrowthStage == "" {
				continue
			}
			if _, ok := seen[view.GrowthStage]; ok {
				continue
			}
			seen[view.GrowthStage] = struct{}{}
			options = append(options, view.GrowthStage)
		}
		if filter.Page >= resp.TotalPages {
			break
		}
		filter.Page++
	}

	phenology.SortStageIndices(options)
	return options, nil
}

// buildViews overlays derived state onto raw tasks. The spray sequence
// is computed over every spraying task of the involved fields, not just
// the rows in hand, so order numbers stay correct across pages.
func (s *TaskService) buildViews(tasks []models.Task) ([]models.TaskView, error) {
	if len(tasks) == 0 {
		return []models.TaskView{}, nil
	}

	products, err := s.productRepo.List("")
	if err != nil {
		return nil, fmt.Errorf("failed to load product catalog: %w", err)
	}
	herbicides := spraying.BuildHerbicideIndex(products)

	fieldIDs := distinctFieldIDs(tasks)
	allSpraying, err := s.taskRepo.ListSprayingByFields(fieldIDs)
	if err != nil {
		return nil, err
	}

	var herbTasks []models.Task
	for _, t := range allSpraying {
		if spraying.IsHerbicideApplication(t, herbicides) {
			herbTasks = append(herbTasks, t)
		}
	}
	sequence := spraying.SequenceTasks(herbTasks)

	intervals, err := s.intervalsBySeason(tasks)
	if err != nil {
		return nil, err
	}

	views := make([]models.TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := models.TaskView{Task: t}
		view.Herbicide = spraying.IsHerbicideApplication(t, herbicides)
		if seq, ok := sequence[t.ID]; ok {
			view.SprayOrder = seq.Order
			view.IntervalAlert = seq.IntervalAlert
		}
		if t.SeasonID != nil {
			if ivs, ok := intervals[*t.SeasonID]; ok {
				if date := spraying.EffectiveDate(t); date != nil {
					view.GrowthStage = phenology.FindStageIndex(ivs, *date)
				}
			}
		}
		views = append(views, view)
	}

	return views, nil
}

// intervalsBySeason loads and start-sorts the stage intervals of every
// season referenced by the given tasks.
func (s *TaskService) intervalsBySeason(tasks []models.Task) (map[string][]models.StageInterval, error) {
	result := make(map[string][]models.StageInterval)
	for _, t := range tasks {
		if t.SeasonID == nil {
			continue
		}
		if _, ok := result[*t.SeasonID]; ok {
			continue
		}
		season, err := s.seasonRepo.GetByID(*t.SeasonID)
		if err != nil {
			return nil, fmt.Errorf("failed to load season %s: %w", *t.SeasonID, err)
		}
		if season == nil {
			continue
		}
		phenology.SortIntervalsByStart(season.StageIntervals)
		result[*t.SeasonID] = season.StageIntervals
	}
	return result, nil
}

func distinctFieldIDs(tasks []models.Task) []string {
	seen := make(map[string]struct{}, len(tasks))
	var ids []string
	for _, t := range tasks {
		if _, ok := seen[t.FieldID]; ok {
			continue
		}
		seen[t.FieldID] = struct{}{}
		ids = append(ids, t.FieldID)
	}
	return ids
}
