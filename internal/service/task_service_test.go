package service

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croftview/fieldops-backend-go/internal/database"
	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/repository"
)

type testEnv struct {
	db        *sql.DB
	fields    *repository.FieldRepository
	seasons   *repository.SeasonRepository
	tasks     *repository.TaskRepository
	products  *repository.ProductRepository
	weather   *repository.WeatherRepository
	taskSvc   *TaskService
	fieldSvc  *FieldService
	seasonSvc *SeasonService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrator := database.NewMigrationManager(db, filepath.Join("..", "..", "migrations"))
	require.NoError(t, migrator.RunMigrations())

	env := &testEnv{
		db:       db,
		fields:   repository.NewFieldRepository(db),
		seasons:  repository.NewSeasonRepository(db),
		tasks:    repository.NewTaskRepository(db),
		products: repository.NewProductRepository(db),
		weather:  repository.NewWeatherRepository(db),
	}
	env.taskSvc = NewTaskService(env.tasks, env.fields, env.seasons, env.products)
	env.fieldSvc = NewFieldService(env.fields)
	env.seasonSvc = NewSeasonService(env.seasons, env.fields)
	return env
}

func strp(s string) *string     { return &s }
func floatp(v float64) *float64 { return &v }

func instant(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func (e *testEnv) mustCreateField(t *testing.T, id, name string, lat, lon *float64) {
	t.Helper()
	require.NoError(t, e.fields.Create(models.Field{ID: id, Name: name, Lat: lat, Lon: lon}))
}

func (e *testEnv) mustCreateTask(t *testing.T, task models.Task) {
	t.Helper()
	require.NoError(t, e.tasks.Create(task))
}

func herbicideCatalog() []models.Product {
	return []models.Product{
		{ID: "glyfo-480", CropID: "wheat", Name: "Glyfo 480", Category: models.CategoryHerbicide},
		{ID: "proline", CropID: "wheat", Name: "Proline", Category: models.CategoryFungicide},
	}
}

func TestTaskService_ListOverlaysSprayingSequence(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateField(t, "F1", "North", nil, nil)
	require.NoError(t, env.products.UpsertBatch(herbicideCatalog()))
	require.NoError(t, env.seasons.Create(models.Season{ID: "S1", FieldID: "F1", CropID: strp("wheat")}))

	// Three herbicide applications: gaps of 14 days (alert) and 25 days
	// (no alert).
	for i, date := range []string{"2024-04-01", "2024-04-15", "2024-05-10"} {
		env.mustCreateTask(t, models.Task{
			ID:            []string{"t1", "t2", "t3"}[i],
			FieldID:       "F1",
			SeasonID:      strp("S1"),
			CropID:        strp("wheat"),
			Kind:          models.TaskKindSpraying,
			ExecutionDate: instant(date + "T09:00:00Z"),
			RecipeEntries: []models.RecipeEntry{{ProductID: strp("glyfo-480")}},
		})
	}
	// A fungicide spray in between must not disturb the sequence.
	env.mustCreateTask(t, models.Task{
		ID: "t4", FieldID: "F1", SeasonID: strp("S1"), CropID: strp("wheat"),
		Kind:          models.TaskKindSpraying,
		ExecutionDate: instant("2024-04-08T09:00:00Z"),
		RecipeEntries: []models.RecipeEntry{{ProductID: strp("proline")}},
	})

	resp, err := env.taskSvc.List(models.TaskFilter{FieldID: "F1"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 4)

	byID := make(map[string]models.TaskView)
	for _, v := range resp.Data {
		byID[v.ID] = v
	}

	assert.True(t, byID["t1"].Herbicide)
	assert.Equal(t, 1, byID["t1"].SprayOrder)
	assert.False(t, byID["t1"].IntervalAlert)

	assert.Equal(t, 2, byID["t2"].SprayOrder)
	assert.True(t, byID["t2"].IntervalAlert, "14-day gap must alert")

	assert.Equal(t, 3, byID["t3"].SprayOrder)
	assert.False(t, byID["t3"].IntervalAlert, "25-day gap must not alert")

	assert.False(t, byID["t4"].Herbicide, "fungicide spray is not a herbicide application")
	assert.Zero(t, byID["t4"].SprayOrder)
}

func TestTaskService_SequenceSpansPages(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateField(t, "F1", "North", nil, nil)
	require.NoError(t, env.products.UpsertBatch(herbicideCatalog()))

	dates := []string{"2024-04-01", "2024-04-25", "2024-05-20", "2024-06-15"}
	for i, date := range dates {
		env.mustCreateTask(t, models.Task{
			ID:            []string{"t1", "t2", "t3", "t4"}[i],
			FieldID:       "F1",
			CropID:        strp("wheat"),
			Kind:          models.TaskKindSpraying,
			ExecutionDate: instant(date + "T09:00:00Z"),
			RecipeEntries: []models.RecipeEntry{{ProductID: strp("glyfo-480")}},
		})
	}

	// Page 2 of 2: spray orders must reflect the whole group, not the page.
	resp, err := env.taskSvc.List(models.TaskFilter{FieldID: "F1", Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, 3, resp.Data[0].SprayOrder)
	assert.Equal(t, 4, resp.Data[1].SprayOrder)
}

func TestTaskService_GrowthStageBadge(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateField(t, "F1", "North", nil, nil)
	require.NoError(t, env.seasons.Create(models.Season{
		ID: "S1", FieldID: "F1", CropID: strp("wheat"),
		StageIntervals: []models.StageInterval{
			// Supplied unsorted; the service sorts by start date before resolving.
			{Index: "BBCH 30", StartDate: "2024-04-10", EndDate: strp("2024-05-01")},
			{Index: "BBCH 10", StartDate: "2024-03-01", EndDate: strp("2024-04-10")},
		},
	}))

	env.mustCreateTask(t, models.Task{
		ID: "t1", FieldID: "F1", SeasonID: strp("S1"),
		Kind:          models.TaskKindSpraying,
		ExecutionDate: instant("2024-04-15T09:00:00Z"),
	})
	env.mustCreateTask(t, models.Task{
		ID: "t2", FieldID: "F1", SeasonID: strp("S1"),
		Kind:        models.TaskKindSpraying,
		PlannedDate: instant("2024-03-05T09:00:00Z"),
	})
	env.mustCreateTask(t, models.Task{
		ID: "t3", FieldID: "F1", SeasonID: strp("S1"),
		Kind: models.TaskKindSpraying, // no dates at all
	})

	resp, err := env.taskSvc.List(models.TaskFilter{FieldID: "F1"})
	require.NoError(t, err)

	byID := make(map[string]models.TaskView)
	for _, v := range resp.Data {
		byID[v.ID] = v
	}
	assert.Equal(t, "30", byID["t1"].GrowthStage)
	assert.Equal(t, "10", byID["t2"].GrowthStage, "planned date drives the badge when unexecuted")
	assert.Equal(t, "", byID["t3"].GrowthStage, "undated task has an unknown stage, not an error")
}

func TestTaskService_StageIndexOptions(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateField(t, "F1", "North", nil, nil)
	require.NoError(t, env.seasons.Create(models.Season{
		ID: "S1", FieldID: "F1",
		StageIntervals: []models.StageInterval{
			{Index: "BBCH 2", StartDate: "2024-03-01", EndDate: strp("2024-04-01")},
			{Index: "BBCH 10", StartDate: "2024-04-01", EndDate: strp("2024-05-01")},
			{Index: "BBCH 21", StartDate: "2024-05-01"},
		},
	}))

	for i, date := range []string{"2024-05-10", "2024-03-10", "2024-04-10", "2024-03-20"} {
		env.mustCreateTask(t, models.Task{
			ID: []string{"t1", "t2", "t3", "t4"}[i], FieldID: "F1", SeasonID: strp("S1"),
			Kind:          models.TaskKindSpraying,
			ExecutionDate: instant(date + "T09:00:00Z"),
		})
	}

	options, err := env.taskSvc.StageIndexOptions(models.TaskFilter{FieldID: "F1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "10", "21"}, options, "numeric order, deduplicated")
}

func TestTaskService_FallbackClassificationWithoutCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateField(t, "F1", "North", nil, nil)

	env.mustCreateTask(t, models.Task{
		ID: "t1", FieldID: "F1", CropID: strp("wheat"),
		Kind:             models.TaskKindSpraying,
		ExecutionDate:    instant("2024-04-01T09:00:00Z"),
		CreationFlowHint: strp("weed_management"),
	})

	resp, err := env.taskSvc.List(models.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Data[0].Herbicide, "flow hint classifies while the catalog is empty")
	assert.Equal(t, 1, resp.Data[0].SprayOrder)
}

func TestTaskService_CreateUnknownField(t *testing.T) {
	env := newTestEnv(t)

	task, err := env.taskSvc.Create(CreateTaskRequest{FieldID: "ghost", Kind: models.TaskKindSpraying})
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestSeasonService_StageAt(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateField(t, "F1", "North", nil, nil)

	season, err := env.seasonSvc.Create("F1", strp("wheat"), []models.StageInterval{
		{Index: "BBCH 30", StartDate: "2024-04-10", EndDate: strp("2024-05-01")},
		{Index: "BBCH 10", StartDate: "2024-03-01", EndDate: strp("2024-04-10")},
	})
	require.NoError(t, err)
	require.NotNil(t, season)

	result, err := env.seasonSvc.StageAt(season.ID, "2024-04-30")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "30", result.StageIndex)

	result, err = env.seasonSvc.StageAt(season.ID, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "", result.StageIndex, "end date is exclusive")

	result, err = env.seasonSvc.StageAt("ghost", "2024-04-30")
	require.NoError(t, err)
	assert.Nil(t, result)

	_, err = env.seasonSvc.StageAt(season.ID, "30-04-2024")
	assert.Error(t, err)
}
