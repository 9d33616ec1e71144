package model

import (
	"time"

	"github.com/burugo/thing"
)

// CaseFile is the metadata row for one blob attached to a case. A row is
// only written after its blob has been stored; StoragePath is the public
// locator derived from the storage base URL.
type CaseFile struct {
	thing.BaseModel
	CaseID      int64     `json:"case_id" db:"case_id,index"`
	FileName    string    `json:"file_name" db:"file_name"`
	FileType    string    `json:"file_type" db:"file_type"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	StoragePath string    `json:"storage_path" db:"storage_path"`
	UploadedAt  time.Time `json:"uploaded_at" db:"uploaded_at"`
}

func (f *CaseFile) TableName() string {
	return "case_files"
}

var CaseFileDB *thing.Thing[*CaseFile]

func CaseFileInit() error {
	var err error
	CaseFileDB, err = thing.Use[*CaseFile]()
	return err
}

func (f *CaseFile) Insert() error {
	return CaseFileDB.Save(f)
}

func GetCaseFilesByCase(caseID int64) ([]*CaseFile, error) {
	return CaseFileDB.Where("case_id = ?", caseID).Order("id ASC").Fetch(0, 100)
}
