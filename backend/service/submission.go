package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"evidentia/backend/common"
	"evidentia/backend/library/receipt"
	"evidentia/backend/library/storage"
	"evidentia/backend/model"
)

// SubmissionStep identifies where a submission is, or where it failed.
// A submission advances strictly in order and never revisits a step.
type SubmissionStep string

const (
	StepIdle      SubmissionStep = "idle"
	StepInserting SubmissionStep = "inserting"
	StepUploading SubmissionStep = "uploading"
	StepLinking   SubmissionStep = "linking"
	StepRendering SubmissionStep = "rendering"
	StepDone      SubmissionStep = "done"
)

// ErrAuthRequired means no identity was resolvable at submission time.
// Handlers answer it with a 401 so the client re-enters the login flow;
// it is an expected re-auth path, not a failure to report.
var ErrAuthRequired = errors.New("authentication required")

// ErrSubmissionInFlight refuses a second submission by the same user while
// one is still running, closing the double-click duplicate-row race.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// ValidationError reports a missing required field, raised before any
// remote call is made.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

// SubmissionError tags a step 2-4 failure with the step that raised it.
// The user sees one generic message; the step survives for logs and for a
// future compensating pass over partial state.
type SubmissionError struct {
	Step SubmissionStep
	Err  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed at step %s: %v", e.Step, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// CaseStore is the record-store surface the workflow needs: insert only.
type CaseStore interface {
	InsertCase(ctx context.Context, kase *model.Case) error
	InsertCaseFile(ctx context.Context, file *model.CaseFile) error
}

// ReceiptRenderer renders the receipt document. It must be pure: same
// inputs, same bytes.
type ReceiptRenderer func(kase *model.Case, file *model.CaseFile, submittedAt time.Time) ([]byte, error)

// SubmissionFile carries the optional attachment of a submission.
type SubmissionFile struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// SubmissionInput is the user-supplied form.
type SubmissionInput struct {
	CaseName    string
	CaseNumber  string
	Description string
	File        *SubmissionFile
}

// SubmissionResult is everything a successful submission produced.
type SubmissionResult struct {
	Case        *model.Case
	CaseFile    *model.CaseFile
	Receipt     []byte
	ReceiptName string
	SubmittedAt time.Time
}

// SubmissionService runs the case-submission workflow: insert the case,
// optionally upload the blob and link its metadata row, render the
// receipt. Steps are strictly sequential and there is no compensation:
// state committed before a failure stays committed.
type SubmissionService struct {
	store  CaseStore
	blobs  storage.BlobStore
	render ReceiptRenderer
	now    func() time.Time

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func NewSubmissionService(store CaseStore, blobs storage.BlobStore, render ReceiptRenderer) *SubmissionService {
	return &SubmissionService{
		store:    store,
		blobs:    blobs,
		render:   render,
		now:      time.Now,
		inFlight: make(map[int64]struct{}),
	}
}

func (s *SubmissionService) acquire(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[userID]; busy {
		return false
	}
	s.inFlight[userID] = struct{}{}
	return true
}

func (s *SubmissionService) release(userID int64) {
	s.mu.Lock()
	delete(s.inFlight, userID)
	s.mu.Unlock()
}

// blobPath scopes an upload by owner and file name. No uniqueness suffix:
// two uploads of the same name by the same user overwrite (last write
// wins).
func blobPath(userID int64, fileName string) string {
	return path.Join("cases", strconv.FormatInt(userID, 10), filepath.Base(fileName))
}

// Submit executes the workflow for userID. Validation failures and a
// missing identity are reported before anything is written; any later
// error carries the failing step and leaves partial state in place.
func (s *SubmissionService) Submit(ctx context.Context, userID int64, in SubmissionInput) (*SubmissionResult, error) {
	if strings.TrimSpace(in.CaseName) == "" {
		return nil, &ValidationError{Field: "case_name"}
	}
	if strings.TrimSpace(in.CaseNumber) == "" {
		return nil, &ValidationError{Field: "case_number"}
	}
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	if !s.acquire(userID) {
		return nil, ErrSubmissionInFlight
	}
	defer s.release(userID)

	kase := &model.Case{
		UserID:      userID,
		CaseName:    in.CaseName,
		CaseNumber:  in.CaseNumber,
		Description: in.Description,
		Status:      model.CaseStatusActive,
	}
	if err := s.store.InsertCase(ctx, kase); err != nil {
		return nil, &SubmissionError{Step: StepInserting, Err: err}
	}

	var caseFile *model.CaseFile
	if in.File != nil {
		uploadPath := blobPath(userID, in.File.Name)
		if err := s.blobs.Upload(ctx, uploadPath, in.File.Reader, in.File.Size); err != nil {
			return nil, &SubmissionError{Step: StepUploading, Err: err}
		}

		caseFile = &model.CaseFile{
			CaseID:      kase.ID,
			FileName:    filepath.Base(in.File.Name),
			FileType:    in.File.ContentType,
			FileSize:    in.File.Size,
			StoragePath: s.blobs.PublicURL(uploadPath),
			UploadedAt:  s.now(),
		}
		if err := s.store.InsertCaseFile(ctx, caseFile); err != nil {
			return nil, &SubmissionError{Step: StepLinking, Err: err}
		}
	}

	submittedAt := s.now()
	rendered, err := s.render(kase, caseFile, submittedAt)
	if err != nil {
		return nil, &SubmissionError{Step: StepRendering, Err: err}
	}

	return &SubmissionResult{
		Case:        kase,
		CaseFile:    caseFile,
		Receipt:     rendered,
		ReceiptName: receipt.Filename(kase.CaseNumber),
		SubmittedAt: submittedAt,
	}, nil
}

// modelCaseStore backs CaseStore with the thing ORM tables.
type modelCaseStore struct{}

func (modelCaseStore) InsertCase(_ context.Context, kase *model.Case) error {
	return kase.Insert()
}

func (modelCaseStore) InsertCaseFile(_ context.Context, file *model.CaseFile) error {
	return file.Insert()
}

// NewDefaultSubmissionService wires the workflow to the real tables, the
// disk blob store and the PDF renderer.
func NewDefaultSubmissionService() *SubmissionService {
	blobs := storage.NewDiskStore(common.UploadPath, common.StoragePublicBase)
	return NewSubmissionService(modelCaseStore{}, blobs, receipt.Render)
}
