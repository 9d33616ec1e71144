package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"evidentia/backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaseStore struct {
	mu        sync.Mutex
	cases     []*model.Case
	caseFiles []*model.CaseFile

	nextCaseID  int64
	caseErr     error
	caseFileErr error
}

func (s *fakeCaseStore) InsertCase(_ context.Context, kase *model.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.caseErr != nil {
		return s.caseErr
	}
	s.nextCaseID++
	kase.ID = s.nextCaseID
	s.cases = append(s.cases, kase)
	return nil
}

func (s *fakeCaseStore) InsertCaseFile(_ context.Context, file *model.CaseFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.caseFileErr != nil {
		return s.caseFileErr
	}
	s.caseFiles = append(s.caseFiles, file)
	return nil
}

type fakeBlobStore struct {
	mu      sync.Mutex
	uploads map[string][]byte
	err     error

	// When set, Upload blocks until the channel is closed.
	gate chan struct{}
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{uploads: make(map[string][]byte)}
}

func (b *fakeBlobStore) Upload(_ context.Context, path string, r io.Reader, size int64) error {
	if b.gate != nil {
		<-b.gate
	}
	if b.err != nil {
		return b.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.uploads[path] = data
	b.mu.Unlock()
	return nil
}

func (b *fakeBlobStore) PublicURL(path string) string {
	return "http://localhost:3000/files/" + path
}

func testRenderer(kase *model.Case, file *model.CaseFile, submittedAt time.Time) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("receipt:" + kase.CaseName + ":" + kase.CaseNumber)
	if file != nil {
		sb.WriteString(fmt.Sprintf(":%s:%.2fKB", file.FileName, float64(file.FileSize)/1024))
	}
	return []byte(sb.String()), nil
}

func newTestService(store *fakeCaseStore, blobs *fakeBlobStore) *SubmissionService {
	svc := NewSubmissionService(store, blobs, testRenderer)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }
	return svc
}

func TestSubmit_MissingCaseName(t *testing.T) {
	store := &fakeCaseStore{}
	svc := newTestService(store, newFakeBlobStore())

	_, err := svc.Submit(context.Background(), 1, SubmissionInput{CaseNumber: "CASE-1"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "case_name", verr.Field)
	assert.Empty(t, store.cases)
}

func TestSubmit_MissingCaseNumber(t *testing.T) {
	store := &fakeCaseStore{}
	svc := newTestService(store, newFakeBlobStore())

	_, err := svc.Submit(context.Background(), 1, SubmissionInput{CaseName: "Burglary"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "case_number", verr.Field)
	assert.Empty(t, store.cases)
}

func TestSubmit_NoIdentity(t *testing.T) {
	store := &fakeCaseStore{}
	svc := newTestService(store, newFakeBlobStore())

	_, err := svc.Submit(context.Background(), 0, SubmissionInput{CaseName: "Burglary", CaseNumber: "CASE-1"})
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Empty(t, store.cases)
}

func TestSubmit_WithoutFile(t *testing.T) {
	store := &fakeCaseStore{}
	svc := newTestService(store, newFakeBlobStore())

	res, err := svc.Submit(context.Background(), 1, SubmissionInput{
		CaseName:   "Operation Phoenix",
		CaseNumber: "CASE-2024-001",
	})
	require.NoError(t, err)

	require.Len(t, store.cases, 1)
	assert.Empty(t, store.caseFiles)
	assert.Equal(t, model.CaseStatusActive, store.cases[0].Status)
	assert.Equal(t, int64(1), store.cases[0].UserID)

	assert.Nil(t, res.CaseFile)
	assert.Equal(t, "CASE-2024-001_case_receipt.pdf", res.ReceiptName)
	assert.NotContains(t, string(res.Receipt), "KB")
}

func TestSubmit_WithFile(t *testing.T) {
	store := &fakeCaseStore{}
	blobs := newFakeBlobStore()
	svc := newTestService(store, blobs)

	content := strings.Repeat("x", 2560)
	res, err := svc.Submit(context.Background(), 7, SubmissionInput{
		CaseName:    "Operation Phoenix",
		CaseNumber:  "CASE-2024-001",
		Description: "Seized laptop",
		File: &SubmissionFile{
			Name:        "evidence.zip",
			ContentType: "application/zip",
			Size:        int64(len(content)),
			Reader:      strings.NewReader(content),
		},
	})
	require.NoError(t, err)

	require.Len(t, store.cases, 1)
	require.Len(t, store.caseFiles, 1)

	cf := store.caseFiles[0]
	assert.Equal(t, store.cases[0].ID, cf.CaseID)
	assert.Equal(t, "evidence.zip", cf.FileName)
	assert.Equal(t, "application/zip", cf.FileType)
	assert.Equal(t, int64(2560), cf.FileSize)
	assert.Equal(t, "http://localhost:3000/files/cases/7/evidence.zip", cf.StoragePath)

	assert.Contains(t, blobs.uploads, "cases/7/evidence.zip")
	assert.Len(t, blobs.uploads["cases/7/evidence.zip"], 2560)

	assert.Equal(t, cf, res.CaseFile)
	assert.Contains(t, string(res.Receipt), "2.50KB")
}

func TestSubmit_CaseInsertFails(t *testing.T) {
	store := &fakeCaseStore{caseErr: errors.New("db down")}
	svc := newTestService(store, newFakeBlobStore())

	_, err := svc.Submit(context.Background(), 1, SubmissionInput{CaseName: "a", CaseNumber: "b"})
	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, StepInserting, serr.Step)
}

func TestSubmit_UploadFails_CaseRowStays(t *testing.T) {
	store := &fakeCaseStore{}
	blobs := newFakeBlobStore()
	blobs.err = errors.New("storage unavailable")
	svc := newTestService(store, blobs)

	_, err := svc.Submit(context.Background(), 1, SubmissionInput{
		CaseName:   "a",
		CaseNumber: "b",
		File: &SubmissionFile{
			Name:   "f.bin",
			Size:   3,
			Reader: strings.NewReader("abc"),
		},
	})
	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, StepUploading, serr.Step)

	// No compensation: the case row survives the failed upload.
	assert.Len(t, store.cases, 1)
	assert.Empty(t, store.caseFiles)
}

func TestSubmit_LinkFails_BlobStays(t *testing.T) {
	store := &fakeCaseStore{caseFileErr: errors.New("db down")}
	blobs := newFakeBlobStore()
	svc := newTestService(store, blobs)

	_, err := svc.Submit(context.Background(), 1, SubmissionInput{
		CaseName:   "a",
		CaseNumber: "b",
		File: &SubmissionFile{
			Name:   "f.bin",
			Size:   3,
			Reader: strings.NewReader("abc"),
		},
	})
	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, StepLinking, serr.Step)

	assert.Len(t, store.cases, 1)
	assert.Contains(t, blobs.uploads, "cases/1/f.bin")
}

func TestSubmit_SecondSubmissionRefusedWhileInFlight(t *testing.T) {
	store := &fakeCaseStore{}
	blobs := newFakeBlobStore()
	blobs.gate = make(chan struct{})
	svc := newTestService(store, blobs)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := svc.Submit(context.Background(), 1, SubmissionInput{
			CaseName:   "first",
			CaseNumber: "CASE-1",
			File: &SubmissionFile{
				Name:   "f.bin",
				Size:   3,
				Reader: strings.NewReader("abc"),
			},
		})
		done <- err
	}()

	<-started
	// Wait until the first submission is parked inside the blob upload.
	assert.Eventually(t, func() bool {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		_, busy := svc.inFlight[1]
		return busy
	}, time.Second, 5*time.Millisecond)

	_, err := svc.Submit(context.Background(), 1, SubmissionInput{CaseName: "second", CaseNumber: "CASE-2"})
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	// A different user is not blocked by user 1's submission.
	_, err = svc.Submit(context.Background(), 2, SubmissionInput{CaseName: "other", CaseNumber: "CASE-3"})
	assert.NoError(t, err)

	close(blobs.gate)
	require.NoError(t, <-done)
	require.Len(t, store.cases, 2)

	// Once released, the same user may submit again.
	_, err = svc.Submit(context.Background(), 1, SubmissionInput{CaseName: "third", CaseNumber: "CASE-4"})
	assert.NoError(t, err)
}

func TestBlobPath(t *testing.T) {
	assert.Equal(t, "cases/7/evidence.zip", blobPath(7, "evidence.zip"))
	assert.Equal(t, "cases/7/evidence.zip", blobPath(7, "../../evidence.zip"))
	assert.Equal(t, "cases/7/evidence.zip", blobPath(7, "nested/dir/evidence.zip"))
}
