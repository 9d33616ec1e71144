package model

import (
	cerr "evidentia/backend/common/errors"

	"github.com/burugo/thing"
)

// Case statuses. New submissions always start active; the other values are
// reserved for later tooling (this service never updates a case).
const (
	CaseStatusActive  = "active"
	CaseStatusClosed  = "closed"
	CaseStatusPending = "pending"
)

// Case is one forensic investigation record, owned by the submitting user.
// Rows are insert-only from this service: created by the submission
// workflow, read back for the dashboard, never updated or deleted.
type Case struct {
	thing.BaseModel
	UserID      int64  `json:"user_id" db:"user_id,index"`
	CaseName    string `json:"case_name" db:"case_name"`
	CaseNumber  string `json:"case_number" db:"case_number,index"`
	Description string `json:"description" db:"description"`
	Status      string `json:"status" db:"status,index"`
}

func (c *Case) TableName() string {
	return "cases"
}

var CaseDB *thing.Thing[*Case]

func CaseInit() error {
	var err error
	CaseDB, err = thing.Use[*Case]()
	return err
}

func (c *Case) Insert() error {
	if c.Status == "" {
		c.Status = CaseStatusActive
	}
	return CaseDB.Save(c)
}

func GetCaseById(id int64) (*Case, error) {
	if id == 0 {
		return nil, cerr.New(cerr.ErrEmptyID, "case id is empty")
	}
	kase, err := CaseDB.ByID(id)
	if err != nil {
		return nil, cerr.Wrap(err, cerr.ErrCaseNotFound, "case not found")
	}
	return kase, nil
}

// GetCasesByUser returns the user's cases newest first.
func GetCasesByUser(userID int64, startIdx int, num int) ([]*Case, error) {
	return CaseDB.Where("user_id = ?", userID).Order("created_at DESC").Fetch(startIdx, num)
}

// CaseStats holds the dashboard counters.
type CaseStats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Closed  int `json:"closed"`
	Pending int `json:"pending"`
}

// GetCaseStatsByUser derives the counters from the user's case list, the
// same way the dashboard did before the counts moved server-side.
func GetCaseStatsByUser(userID int64) (*CaseStats, error) {
	cases, err := CaseDB.Where("user_id = ?", userID).Fetch(0, 10000)
	if err != nil {
		return nil, err
	}
	stats := &CaseStats{Total: len(cases)}
	for _, c := range cases {
		switch c.Status {
		case CaseStatusActive:
			stats.Active++
		case CaseStatusClosed:
			stats.Closed++
		case CaseStatusPending:
			stats.Pending++
		}
	}
	return stats, nil
}
