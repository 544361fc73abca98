package spraying_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/spraying"
)

func datep(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func herbTask(id, fieldID, seasonID, execDate string) models.Task {
	t := models.Task{
		ID:      id,
		FieldID: fieldID,
		Kind:    models.TaskKindSpraying,
	}
	if seasonID != "" {
		t.SeasonID = strp(seasonID)
	}
	if execDate != "" {
		t.ExecutionDate = datep(execDate)
	}
	return t
}

func TestSequenceTasks_EndToEndScenario(t *testing.T) {
	// Three applications on the same field and season: 14 days between
	// the first two (alert), 25 days between the last two (no alert).
	tasks := []models.Task{
		herbTask("t1", "F1", "S1", "2024-04-01"),
		herbTask("t2", "F1", "S1", "2024-04-15"),
		herbTask("t3", "F1", "S1", "2024-05-10"),
	}

	seq := spraying.SequenceTasks(tasks)
	require.Len(t, seq, 3)

	assert.Equal(t, models.SpraySequence{Order: 1, IntervalAlert: false}, seq["t1"])
	assert.Equal(t, models.SpraySequence{Order: 2, IntervalAlert: true}, seq["t2"])
	assert.Equal(t, models.SpraySequence{Order: 3, IntervalAlert: false}, seq["t3"])
}

func TestSequenceTasks_ThresholdBoundary(t *testing.T) {
	// Exactly 20 days apart: safe. Exactly 19 days apart: alert.
	seq := spraying.SequenceTasks([]models.Task{
		herbTask("a1", "F1", "S1", "2024-04-01"),
		herbTask("a2", "F1", "S1", "2024-04-21"),
	})
	assert.False(t, seq["a2"].IntervalAlert, "20-day gap must not alert")

	seq = spraying.SequenceTasks([]models.Task{
		herbTask("b1", "F1", "S1", "2024-04-01"),
		herbTask("b2", "F1", "S1", "2024-04-20"),
	})
	assert.True(t, seq["b2"].IntervalAlert, "19-day gap must alert")
}

func TestSequenceTasks_GroupsByFieldAndSeason(t *testing.T) {
	tasks := []models.Task{
		herbTask("t1", "F1", "S1", "2024-04-01"),
		herbTask("t2", "F1", "S2", "2024-04-05"),
		herbTask("t3", "F2", "S1", "2024-04-10"),
	}

	seq := spraying.SequenceTasks(tasks)

	// Each task is alone in its group: all first, none alerted.
	for id, s := range seq {
		assert.Equal(t, 1, s.Order, "task %s", id)
		assert.False(t, s.IntervalAlert, "task %s", id)
	}
}

func TestSequenceTasks_SeasonlessFallBackToNone(t *testing.T) {
	tasks := []models.Task{
		herbTask("t1", "F1", "", "2024-04-01"),
		herbTask("t2", "F1", "", "2024-04-10"),
		herbTask("t3", "F1", "S1", "2024-04-10"),
	}

	seq := spraying.SequenceTasks(tasks)
	require.Len(t, seq, 3, "seasonless tasks are never dropped")

	assert.Equal(t, 1, seq["t1"].Order)
	assert.Equal(t, 2, seq["t2"].Order)
	assert.True(t, seq["t2"].IntervalAlert, "9-day gap within the fallback group")
	assert.Equal(t, 1, seq["t3"].Order, "seasoned task sequences separately")
}

func TestSequenceTasks_PlannedDateFallback(t *testing.T) {
	t1 := herbTask("t1", "F1", "S1", "")
	t1.PlannedDate = datep("2024-04-01")
	t2 := herbTask("t2", "F1", "S1", "2024-04-10")

	seq := spraying.SequenceTasks([]models.Task{t2, t1})
	assert.Equal(t, 1, seq["t1"].Order, "planned date is the effective date when execution is absent")
	assert.Equal(t, 2, seq["t2"].Order)
	assert.True(t, seq["t2"].IntervalAlert)
}

func TestSequenceTasks_UndatedSortLastAndSuppressAlerts(t *testing.T) {
	tasks := []models.Task{
		herbTask("undated-a", "F1", "S1", ""),
		herbTask("dated-1", "F1", "S1", "2024-04-01"),
		herbTask("undated-b", "F1", "S1", ""),
		herbTask("dated-2", "F1", "S1", "2024-04-05"),
	}

	seq := spraying.SequenceTasks(tasks)

	assert.Equal(t, 1, seq["dated-1"].Order)
	assert.Equal(t, 2, seq["dated-2"].Order)
	assert.Equal(t, 3, seq["undated-a"].Order, "undated keep input order after dated")
	assert.Equal(t, 4, seq["undated-b"].Order)

	assert.True(t, seq["dated-2"].IntervalAlert)
	assert.False(t, seq["undated-a"].IntervalAlert, "missing date suppresses the adjacency alert")
	assert.False(t, seq["undated-b"].IntervalAlert)
}

func TestSequenceTasks_StableUnderPermutation(t *testing.T) {
	base := []models.Task{
		herbTask("t1", "F1", "S1", "2024-04-01"),
		herbTask("t2", "F1", "S1", "2024-04-15"),
		herbTask("t3", "F1", "S1", "2024-05-10"),
		herbTask("t4", "F1", "S1", "2024-04-15"), // same day as t2
	}
	perm := []models.Task{base[2], base[3], base[0], base[1]}

	seqA := spraying.SequenceTasks(base)
	seqB := spraying.SequenceTasks(perm)
	assert.Equal(t, seqA, seqB, "dated order assignments are identical under input reordering")

	// Same-day ties break by task id.
	assert.Equal(t, 2, seqA["t2"].Order)
	assert.Equal(t, 3, seqA["t4"].Order)
}

func TestSequenceTasks_AlertNeverOnFirst(t *testing.T) {
	seq := spraying.SequenceTasks([]models.Task{
		herbTask("only", "F1", "S1", "2024-04-01"),
	})
	assert.Equal(t, models.SpraySequence{Order: 1, IntervalAlert: false}, seq["only"])
}

func TestEffectiveDate(t *testing.T) {
	task := herbTask("t", "F1", "S1", "2024-04-02")
	task.PlannedDate = datep("2024-04-01")
	require.NotNil(t, spraying.EffectiveDate(task))
	assert.Equal(t, *datep("2024-04-02"), *spraying.EffectiveDate(task), "execution date wins")

	task.ExecutionDate = nil
	assert.Equal(t, *datep("2024-04-01"), *spraying.EffectiveDate(task))

	task.PlannedDate = nil
	assert.Nil(t, spraying.EffectiveDate(task))
}
