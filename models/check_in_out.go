package models

import "time"

type CheckDirection string

const (
	CheckIn  CheckDirection = "IN"
	CheckOut CheckDirection = "OUT"
)

type CheckInOut struct {
	Id             string
	EmployeeNumber string
	RecordedAt     time.Time
	Direction      CheckDirection
	CreatedAt      time.Time
}

type UpsertCheckInOutAttributes struct {
	EmployeeNumber string
	RecordedAt     time.Time
	Direction      CheckDirection
}
