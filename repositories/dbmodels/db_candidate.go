package dbmodels

import (
	"time"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/utils"
)

const TABLE_CANDIDATES = "candidates"

type DBCandidate struct {
	Id              string     `db:"id"`
	Email           string     `db:"email"`
	FirstName       string     `db:"first_name"`
	LastName        string     `db:"last_name"`
	PositionApplied string     `db:"position_applied"`
	Stage           string     `db:"stage"`
	ExpectedSalary  *float64   `db:"expected_salary"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

var SelectCandidateColumn = utils.ColumnList[DBCandidate]()

func AdaptCandidate(db DBCandidate) (models.Candidate, error) {
	return models.Candidate{
		Id:              db.Id,
		Email:           db.Email,
		FirstName:       db.FirstName,
		LastName:        db.LastName,
		PositionApplied: db.PositionApplied,
		Stage:           db.Stage,
		ExpectedSalary:  db.ExpectedSalary,
		CreatedAt:       db.CreatedAt,
		UpdatedAt:       db.UpdatedAt,
	}, nil
}
