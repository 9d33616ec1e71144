package handler

import (
	"net/http"
	"time"

	"evidentia/backend/common"
	"evidentia/backend/model"
	"evidentia/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=20"`
	FullName     string `json:"full_name" validate:"required,max=100"`
	Organization string `json:"organization" validate:"max=100"`
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type loginResponse struct {
	User *model.User `json:"user"`
	tokenPair
}

// Login authenticates by email+password, establishes the web session and
// issues a JWT pair for API clients.
func Login(c *gin.Context) {
	if !common.PasswordLoginEnabled {
		common.RespErrorStr(c, http.StatusForbidden, "password login is disabled")
		return
	}
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	user := model.User{
		Email:    req.Email,
		Password: req.Password,
	}
	if err := user.ValidateAndFill(); err != nil {
		common.RespErrorStr(c, http.StatusUnauthorized, err.Error())
		return
	}

	setupLogin(&user, c)
}

// setupLogin saves the session and answers with the sanitized user plus a
// token pair.
func setupLogin(user *model.User, c *gin.Context) {
	session := sessions.Default(c)
	session.Set("id", user.ID)
	session.Set("email", user.Email)
	session.Set("role", user.Role)
	session.Set("status", user.Status)
	if err := session.Save(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to save session", err)
		return
	}

	accessToken, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}
	refreshToken, err := service.GenerateRefreshToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	common.RespSuccess(c, loginResponse{
		User: user.Sanitized(),
		tokenPair: tokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	})
}

// Register creates an investigator account with the signup profile
// attributes (full name, organization) and signs the new user in.
func Register(c *gin.Context) {
	if !common.RegisterEnabled {
		common.RespErrorStr(c, http.StatusForbidden, "registration is disabled")
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if model.IsEmailAlreadyTaken(req.Email) {
		common.RespErrorStr(c, http.StatusBadRequest, "email address is already registered")
		return
	}

	user := model.User{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		Organization: req.Organization,
		Role:         common.RoleCommonUser,
		Status:       common.UserStatusEnabled,
	}
	if err := user.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to create account", err)
		return
	}

	setupLogin(&user, c)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshToken exchanges a valid refresh token for a fresh access token.
func RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	claims, err := service.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		common.RespErrorStr(c, http.StatusUnauthorized, "refresh token is invalid or expired")
		return
	}
	user, err := model.GetUserById(claims.UserID)
	if err != nil || user.Status != common.UserStatusEnabled {
		common.RespErrorStr(c, http.StatusUnauthorized, "account no longer available")
		return
	}
	accessToken, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}
	common.RespSuccess(c, tokenPair{AccessToken: accessToken})
}

// Logout clears the web session and, when Redis is available, blacklists
// the presented access token for the rest of its lifetime.
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to clear session", err)
		return
	}

	if common.RedisEnabled {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token := authHeader[7:]
			if err := common.RDB.Set(c, "jwt:blacklist:"+token, "1", common.JWTAccessTokenDuration).Err(); err != nil {
				common.SysError("failed to blacklist token: " + err.Error())
			}
		}
	}

	common.RespSuccessStr(c, "signed out")
}

// GetSession is the public current-identity endpoint the front end
// subscribes to: the signed-in user, or null data when there is no
// session. It never answers an error status so the navbar swap is cheap.
func GetSession(c *gin.Context) {
	session := sessions.Default(c)
	id, ok := session.Get("id").(int64)
	if !ok || id == 0 {
		common.RespSuccess(c, nil)
		return
	}
	user, err := model.GetUserById(id)
	if err != nil {
		common.RespSuccess(c, nil)
		return
	}
	common.RespSuccess(c, user.Sanitized())
}

// GetStatus reports liveness and version for ops probes.
func GetStatus(c *gin.Context) {
	common.RespSuccess(c, gin.H{
		"version":     common.Version,
		"system_name": common.SystemName,
		"server_time": common.FormatTime(time.Now()),
	})
}
