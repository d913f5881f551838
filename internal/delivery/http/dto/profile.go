package dto

import (
	"time"

	"resume-tailor/internal/domain/profile"
)

type SaveResumeRequest struct {
	Content string `json:"content"`
}

type ResumeResponse struct {
	Content   string    `json:"content"`
	FileName  *string   `json:"file_name"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewResumeResponse(r profile.Resume) ResumeResponse {
	return ResumeResponse{Content: r.Content, FileName: r.FileName, UpdatedAt: r.UpdatedAt}
}

type IntentRequest struct {
	DesiredRoles []string `json:"desired_roles"`
	Companies    []string `json:"companies"`
	Locations    []string `json:"locations"`
	WorkMode     string   `json:"work_mode"`
}

type IntentResponse struct {
	DesiredRoles []string  `json:"desired_roles"`
	Companies    []string  `json:"companies"`
	Locations    []string  `json:"locations"`
	WorkMode     string    `json:"work_mode"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewIntentResponse(in profile.Intent) IntentResponse {
	return IntentResponse{
		DesiredRoles: nonNil(in.DesiredRoles),
		Companies:    nonNil(in.Companies),
		Locations:    nonNil(in.Locations),
		WorkMode:     in.WorkMode,
		UpdatedAt:    in.UpdatedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
