package ws

import (
	"encoding/json"
	"time"

	"jobboard/internal/domain/job"
)

type JobPostedEvent struct {
	Type      string `json:"type"`
	JobID     string `json:"jobId"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
}

// Notifier adapts the hub to the job usecase's notification hook.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyJobPosted(j job.Job) {
	if n == nil || n.hub == nil {
		return
	}

	evt := JobPostedEvent{
		Type:      "job_posted",
		JobID:     j.ID.String(),
		Title:     j.Title,
		Company:   j.Company,
		Category:  j.Category,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(b)
}
