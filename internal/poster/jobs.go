package poster

import (
	"encoding/json"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// FanoutJob asks the dispatcher to post one look everywhere.
type FanoutJob struct {
	TaskID string        `json:"task_id"`
	Look   *LookSnapshot `json:"look"`
}

// DeliveryJob posts one look to one platform. Attempt is 1-based.
type DeliveryJob struct {
	TaskID  string          `json:"task_id"`
	Service Platform        `json:"service"`
	Attempt int             `json:"attempt"`
	Look    json.RawMessage `json:"look"`
}

// lookID peeks at the look id of a possibly invalid snapshot.
func (j *DeliveryJob) lookID() *int {
	var head struct {
		ID *int `json:"id"`
	}
	if err := json.Unmarshal(j.Look, &head); err != nil {
		return nil
	}
	return head.ID
}

// Result is the outcome entry written to the result set.
type Result struct {
	Status  string   `json:"status"`
	TaskID  string   `json:"task_id"`
	LookID  *int     `json:"look_id,omitempty"`
	Service Platform `json:"service,omitempty"`
	Error   string   `json:"error,omitempty"`
}
