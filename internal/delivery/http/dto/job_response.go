package dto

import (
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/job"
)

type JobResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Type         string    `json:"type"`
	Salary       string    `json:"salary"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Category     string    `json:"category"`
	CreatedBy    uuid.UUID `json:"createdBy"`
	PostedDate   time.Time `json:"postedDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewJobResponse(j job.Job) JobResponse {
	reqs := j.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return JobResponse{
		ID:           j.ID,
		Title:        j.Title,
		Company:      j.Company,
		Location:     j.Location,
		Type:         j.Type,
		Salary:       j.Salary,
		Description:  j.Description,
		Requirements: reqs,
		Category:     j.Category,
		CreatedBy:    j.CreatedBy,
		PostedDate:   j.PostedDate,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

type PosterResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// JobDetailResponse is the read shape: createdBy is expanded into the
// poster's public fields.
type JobDetailResponse struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Company      string         `json:"company"`
	Location     string         `json:"location"`
	Type         string         `json:"type"`
	Salary       string         `json:"salary"`
	Description  string         `json:"description"`
	Requirements []string       `json:"requirements"`
	Category     string         `json:"category"`
	CreatedBy    PosterResponse `json:"createdBy"`
	PostedDate   time.Time      `json:"postedDate"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func NewJobDetailResponse(l job.Listing) JobDetailResponse {
	reqs := l.Job.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return JobDetailResponse{
		ID:           l.Job.ID,
		Title:        l.Job.Title,
		Company:      l.Job.Company,
		Location:     l.Job.Location,
		Type:         l.Job.Type,
		Salary:       l.Job.Salary,
		Description:  l.Job.Description,
		Requirements: reqs,
		Category:     l.Job.Category,
		CreatedBy: PosterResponse{
			ID:    l.Poster.ID,
			Name:  l.Poster.Name,
			Email: l.Poster.Email,
			Role:  l.Poster.Role,
		},
		PostedDate: l.Job.PostedDate,
		CreatedAt:  l.Job.CreatedAt,
		UpdatedAt:  l.Job.UpdatedAt,
	}
}

func NewJobDetailResponses(ls []job.Listing) []JobDetailResponse {
	out := make([]JobDetailResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, NewJobDetailResponse(l))
	}
	return out
}
