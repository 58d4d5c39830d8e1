package models

import "time"

type Employee struct {
	Id             string
	Email          string
	FirstName      string
	LastName       string
	EmployeeNumber string
	Position       string
	Department     string
	HiredOn        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type UpsertEmployeeAttributes struct {
	Email          string
	FirstName      string
	LastName       string
	EmployeeNumber string
	Position       string
	Department     string
	HiredOn        *time.Time
}
