package handler

import (
	"net/http"

	"evidentia/backend/common"
	"evidentia/backend/model"

	"github.com/gin-gonic/gin"
)

// GetOptions answers the runtime option map. Root only.
func GetOptions(c *gin.Context) {
	options, err := model.AllOptions()
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load options", err)
		return
	}
	common.RespSuccess(c, options)
}

type OptionRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

// UpdateOption persists one runtime option and applies it immediately.
func UpdateOption(c *gin.Context) {
	var req OptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := model.UpdateOption(req.Key, req.Value); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to update option", err)
		return
	}
	common.RespSuccessStr(c, "option updated")
}
