package models

import "time"

type Candidate struct {
	Id              string
	Email           string
	FirstName       string
	LastName        string
	PositionApplied string
	Stage           string
	ExpectedSalary  *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var CandidateStages = []string{"APPLIED", "SCREENING", "INTERVIEW", "OFFER", "HIRED", "REJECTED"}

type UpsertCandidateAttributes struct {
	Email           string
	FirstName       string
	LastName        string
	PositionApplied string
	Stage           string
	ExpectedSalary  *float64
}
