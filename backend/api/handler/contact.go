package handler

import (
	"net/http"

	"evidentia/backend/common"
	"evidentia/backend/service"

	"github.com/gin-gonic/gin"
)

var contactService *service.ContactService

type ContactRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Organization string `json:"organization" validate:"max=100"`
	Subject      string `json:"subject" validate:"required,max=200"`
	Message      string `json:"message" validate:"required,max=5000"`
}

// SubmitContact records a contact-form message and relays it through the
// configured mail relay.
func SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	msg, err := contactService.Submit(c.Request.Context(), c.GetInt64("id"), service.ContactInput{
		Name:         req.Name,
		Email:        req.Email,
		Organization: req.Organization,
		Subject:      req.Subject,
		Message:      req.Message,
	})
	if err != nil {
		common.SysError("contact relay failed: " + err.Error())
		common.RespErrorStr(c, http.StatusBadGateway, "message was recorded but could not be relayed")
		return
	}
	common.RespSuccessWithMsg(c, "message sent", msg)
}
