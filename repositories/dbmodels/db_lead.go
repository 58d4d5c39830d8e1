package dbmodels

import (
	"time"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/utils"
)

const TABLE_LEADS = "leads"

type DBLead struct {
	Id        string    `db:"id"`
	Email     string    `db:"email"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Company   string    `db:"company"`
	Phone     string    `db:"phone"`
	Status    string    `db:"status"`
	Source    string    `db:"source"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

var SelectLeadColumn = utils.ColumnList[DBLead]()

func AdaptLead(db DBLead) (models.Lead, error) {
	return models.Lead{
		Id:        db.Id,
		Email:     db.Email,
		FirstName: db.FirstName,
		LastName:  db.LastName,
		Company:   db.Company,
		Phone:     db.Phone,
		Status:    db.Status,
		Source:    db.Source,
		CreatedAt: db.CreatedAt,
		UpdatedAt: db.UpdatedAt,
	}, nil
}
