package dto

import (
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/application"
)

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"jobId"`
	UserID      uuid.UUID `json:"userId"`
	Status      string    `json:"status"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	Resume      string    `json:"resume,omitempty"`
	AppliedDate time.Time `json:"appliedDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		UserID:      a.UserID,
		Status:      a.Status.String(),
		CoverLetter: a.CoverLetter,
		Resume:      a.Resume,
		AppliedDate: a.AppliedDate,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type ApplicationJobResponse struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Location string    `json:"location"`
	Type     string    `json:"type"`
	Category string    `json:"category"`
}

// MyApplicationResponse is the jobseeker's view: each application carries a
// summary of the job it targets.
type MyApplicationResponse struct {
	ApplicationResponse
	Job ApplicationJobResponse `json:"job"`
}

func NewMyApplicationResponses(apps []application.Application, jobs []application.JobSummary) []MyApplicationResponse {
	out := make([]MyApplicationResponse, 0, len(apps))
	for i, a := range apps {
		js := jobs[i]
		out = append(out, MyApplicationResponse{
			ApplicationResponse: NewApplicationResponse(a),
			Job: ApplicationJobResponse{
				ID:       js.ID,
				Title:    js.Title,
				Company:  js.Company,
				Location: js.Location,
				Type:     js.Type,
				Category: js.Category,
			},
		})
	}
	return out
}

type ApplicantResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// JobApplicationResponse is the employer's view: each application carries
// the applicant's public fields.
type JobApplicationResponse struct {
	ApplicationResponse
	Applicant ApplicantResponse `json:"applicant"`
}

func NewJobApplicationResponses(apps []application.Application, applicants []application.Applicant) []JobApplicationResponse {
	out := make([]JobApplicationResponse, 0, len(apps))
	for i, a := range apps {
		ap := applicants[i]
		out = append(out, JobApplicationResponse{
			ApplicationResponse: NewApplicationResponse(a),
			Applicant: ApplicantResponse{
				ID:    ap.ID,
				Name:  ap.Name,
				Email: ap.Email,
				Role:  ap.Role,
			},
		})
	}
	return out
}
