package handler

import (
	"net/http"
	"strconv"

	"evidentia/backend/common"
	cerr "evidentia/backend/common/errors"
	"evidentia/backend/model"

	"github.com/gin-gonic/gin"
)

// GetCases lists the caller's cases, newest first, paginated with ?p=.
func GetCases(c *gin.Context) {
	userID := c.GetInt64("id")
	p, _ := strconv.Atoi(c.Query("p"))
	if p < 0 {
		p = 0
	}
	cases, err := model.GetCasesByUser(userID, p*common.ItemsPerPage, common.ItemsPerPage)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load cases", err)
		return
	}
	common.RespSuccess(c, cases)
}

// GetCaseStats answers the dashboard counters for the caller.
func GetCaseStats(c *gin.Context) {
	userID := c.GetInt64("id")
	stats, err := model.GetCaseStatsByUser(userID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load case stats", err)
		return
	}
	common.RespSuccess(c, stats)
}

type caseDetail struct {
	*model.Case
	Files []*model.CaseFile `json:"files"`
}

// GetCase answers one case with its attached files. Only the owner or an
// admin may read it.
func GetCase(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid case id")
		return
	}
	kase, err := model.GetCaseById(id)
	if err != nil {
		if cerr.IsCode(err, cerr.ErrCaseNotFound) {
			common.RespErrorStr(c, http.StatusNotFound, "case not found")
		} else {
			common.RespError(c, http.StatusInternalServerError, "failed to load case", err)
		}
		return
	}
	if kase.UserID != c.GetInt64("id") && c.GetInt("role") < common.RoleAdminUser {
		common.RespErrorStr(c, http.StatusForbidden, "not your case")
		return
	}
	files, err := model.GetCaseFilesByCase(kase.ID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load case files", err)
		return
	}
	common.RespSuccess(c, caseDetail{Case: kase, Files: files})
}
