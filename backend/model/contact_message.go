package model

import (
	"github.com/burugo/thing"
)

// ContactMessage records one contact-form submission. Relayed reports
// whether the mail relay accepted it; the row is kept either way so a
// failed relay never loses the message.
type ContactMessage struct {
	thing.BaseModel
	UserID       int64  `json:"user_id" db:"user_id,index"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	Organization string `json:"organization" db:"organization"`
	Subject      string `json:"subject" db:"subject"`
	Message      string `json:"message" db:"message"`
	Relayed      bool   `json:"relayed" db:"relayed"`
}

func (m *ContactMessage) TableName() string {
	return "contact_messages"
}

var ContactMessageDB *thing.Thing[*ContactMessage]

func ContactMessageInit() error {
	var err error
	ContactMessageDB, err = thing.Use[*ContactMessage]()
	return err
}

func (m *ContactMessage) Insert() error {
	return ContactMessageDB.Save(m)
}

func (m *ContactMessage) Update() error {
	return ContactMessageDB.Save(m)
}
