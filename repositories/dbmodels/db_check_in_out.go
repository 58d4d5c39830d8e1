package dbmodels

import (
	"time"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/utils"
)

const TABLE_CHECK_IN_OUTS = "check_in_outs"

type DBCheckInOut struct {
	Id             string    `db:"id"`
	EmployeeNumber string    `db:"employee_number"`
	RecordedAt     time.Time `db:"recorded_at"`
	Direction      string    `db:"direction"`
	CreatedAt      time.Time `db:"created_at"`
}

var SelectCheckInOutColumn = utils.ColumnList[DBCheckInOut]()

func AdaptCheckInOut(db DBCheckInOut) (models.CheckInOut, error) {
	return models.CheckInOut{
		Id:             db.Id,
		EmployeeNumber: db.EmployeeNumber,
		RecordedAt:     db.RecordedAt,
		Direction:      models.CheckDirection(db.Direction),
		CreatedAt:      db.CreatedAt,
	}, nil
}
