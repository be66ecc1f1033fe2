package assignment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/core/assignment"
	inmemdb "github.com/studyflow/studyflow/storage/database/inmem"
)

const uid = "8f7b2c4e-0000-4000-8000-000000000003"

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := assignment.NewService(inmemdb.NewAssignmentRepository(inmemdb.Open()))

	essay, err := svc.Create(ctx, uid, assignment.NewAssignment{Title: "Essay", DueDate: "2024-05-10", Priority: assignment.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC), essay.DueDate)

	lab, err := svc.Create(ctx, uid, assignment.NewAssignment{Title: "Lab report", DueDate: "2024-05-03"})
	require.NoError(t, err)
	assert.Equal(t, assignment.PriorityMedium, lab.Priority, "default priority")

	_, err = svc.Create(ctx, uid, assignment.NewAssignment{Title: "Bad", DueDate: "10/05/2024"})
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "due_date", vErr.Fields[0].Field)

	list, err := svc.List(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, lab.ID, list[0].ID, "due first")

	lab, err = svc.ToggleComplete(ctx, uid, lab.ID)
	require.NoError(t, err)
	assert.True(t, lab.Completed)

	list, err = svc.List(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, essay.ID, list[0].ID, "incomplete first")

	stats, err := svc.Stats(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 50, stats.CompletionRate)
	assert.Equal(t, "Essay", stats.MostUrgentLabel)
	assert.Equal(t, map[assignment.Priority]int{"High": 1, "Medium": 1, "Low": 0}, stats.PriorityDistribution)

	title := "Long essay"
	due := "2024-05-12"
	essay, err = svc.Update(ctx, uid, essay.ID, assignment.UpdateAssignment{Title: &title, DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, "Long essay", essay.Title)
	assert.Equal(t, 12, essay.DueDate.Day())

	bad := "2024-13-01"
	_, err = svc.Update(ctx, uid, essay.ID, assignment.UpdateAssignment{DueDate: &bad})
	assert.ErrorAs(t, err, &vErr)

	require.NoError(t, svc.Delete(ctx, uid, essay.ID))
	_, err = svc.ToggleComplete(ctx, uid, essay.ID)
	assert.Equal(t, assignment.ErrNotFound, err)

	stats, err = svc.Stats(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "No urgent assignments", stats.MostUrgentLabel)
	assert.Nil(t, stats.MostUrgent)
}
