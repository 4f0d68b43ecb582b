package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exportPayload struct {
	JobID  string  `json:"job_id"`
	Frames int     `json:"frames"`
	From   float64 `json:"from"`
}

func TestNewTaskAndDecodePayload(t *testing.T) {
	task, err := NewTask(TaskTypeOverlayExport, exportPayload{JobID: "j1", Frames: 601, From: 1.5}, 8)
	require.NoError(t, err)
	assert.Equal(t, TaskTypeOverlayExport, task.Type)
	assert.Equal(t, 3, task.MaxRetry)
	assert.Contains(t, task.ID, "task_")
	assert.Equal(t, "j1", task.Payload["job_id"])

	var got exportPayload
	require.NoError(t, DecodePayload(task, &got))
	assert.Equal(t, exportPayload{JobID: "j1", Frames: 601, From: 1.5}, got)
}

func TestNewTaskRejectsNonObjects(t *testing.T) {
	_, err := NewTask(TaskTypeOverlayExport, []int{1, 2}, 1)
	assert.Error(t, err)
}

func TestClampPriority(t *testing.T) {
	assert.Equal(t, uint8(0), clampPriority(-3))
	assert.Equal(t, uint8(7), clampPriority(7))
	assert.Equal(t, uint8(10), clampPriority(42))
}
