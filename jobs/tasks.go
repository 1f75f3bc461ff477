package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/rag-admin/rag-admin/internal/officials"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskOfficialsSync imports the upstream officials roster.
	TaskOfficialsSync = "officials:sync"
)

// NewOfficialsSyncTask constructs an Asynq task for an officials sync run.
func NewOfficialsSyncTask(req officials.SyncRequest) (*asynq.Task, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOfficialsSync, body, asynq.Queue(QueueDefault)), nil
}
