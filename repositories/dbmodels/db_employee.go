package dbmodels

import (
	"time"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/utils"
)

const TABLE_EMPLOYEES = "employees"

type DBEmployee struct {
	Id             string     `db:"id"`
	Email          string     `db:"email"`
	FirstName      string     `db:"first_name"`
	LastName       string     `db:"last_name"`
	EmployeeNumber *string    `db:"employee_number"`
	Position       string     `db:"position"`
	Department     string     `db:"department"`
	HiredOn        *time.Time `db:"hired_on"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

var SelectEmployeeColumn = utils.ColumnList[DBEmployee]()

func AdaptEmployee(db DBEmployee) (models.Employee, error) {
	employee := models.Employee{
		Id:         db.Id,
		Email:      db.Email,
		FirstName:  db.FirstName,
		LastName:   db.LastName,
		Position:   db.Position,
		Department: db.Department,
		HiredOn:    db.HiredOn,
		CreatedAt:  db.CreatedAt,
		UpdatedAt:  db.UpdatedAt,
	}
	if db.EmployeeNumber != nil {
		employee.EmployeeNumber = *db.EmployeeNumber
	}
	return employee, nil
}
