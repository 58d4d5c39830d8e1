package models

import "time"

type Lead struct {
	Id        string
	Email     string
	FirstName string
	LastName  string
	Company   string
	Phone     string
	Status    string
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var LeadStatuses = []string{"NEW", "CONTACTED", "QUALIFIED", "LOST"}

type UpsertLeadAttributes struct {
	Email     string
	FirstName string
	LastName  string
	Company   string
	Phone     string
	Status    string
	Source    string
}
