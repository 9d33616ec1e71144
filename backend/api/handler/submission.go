package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"evidentia/backend/common"
	"evidentia/backend/service"

	"github.com/gin-gonic/gin"
)

var submissionService *service.SubmissionService

// InitServices wires the package to the production services. Called once
// from main after the database and config are up.
func InitServices() {
	submissionService = service.NewDefaultSubmissionService()
	contactService = service.NewDefaultContactService()
}

// CreateCase runs the case-submission workflow from a multipart form
// {case_name, case_number, description, file?}. On success the response
// body is the receipt PDF offered as a download named after the case
// number, with the new case id in X-Case-Id.
func CreateCase(c *gin.Context) {
	userID := c.GetInt64("id")

	input := service.SubmissionInput{
		CaseName:    c.PostForm("case_name"),
		CaseNumber:  c.PostForm("case_number"),
		Description: c.PostForm("description"),
	}

	fileHeader, err := c.FormFile("file")
	if err == nil && fileHeader != nil {
		if fileHeader.Size > common.MaxUploadSize {
			common.RespErrorStr(c, http.StatusRequestEntityTooLarge, "file exceeds the upload size limit")
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			common.RespError(c, http.StatusBadRequest, "failed to read uploaded file", err)
			return
		}
		defer f.Close()
		input.File = &service.SubmissionFile{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Reader:      f,
		}
	}

	result, err := submissionService.Submit(c.Request.Context(), userID, input)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.Header("X-Case-Id", strconv.FormatInt(result.Case.ID, 10))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.ReceiptName))
	c.Data(http.StatusCreated, "application/pdf", result.Receipt)
}

// respondSubmissionError maps workflow errors onto API answers. The
// failing step is logged, never surfaced; users get one generic message.
func respondSubmissionError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var submissionErr *service.SubmissionError
	switch {
	case errors.As(err, &validationErr):
		common.RespErrorStr(c, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrAuthRequired):
		common.RespErrorStr(c, http.StatusUnauthorized, "not signed in")
	case errors.Is(err, service.ErrSubmissionInFlight):
		common.RespErrorStr(c, http.StatusConflict, "a submission is already in progress")
	case errors.As(err, &submissionErr):
		common.SysError(fmt.Sprintf("case submission failed at step %s: %v", submissionErr.Step, submissionErr.Err))
		common.RespErrorStr(c, http.StatusInternalServerError, "An error occurred while creating the case")
	default:
		common.SysError("case submission failed: " + err.Error())
		common.RespErrorStr(c, http.StatusInternalServerError, "An error occurred while creating the case")
	}
}
