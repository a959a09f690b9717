package handlers

import (
	"errors"
	"net/http"

	"hemovida/models"
	"hemovida/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// registerRequest carries the self-service signup fields. Everything else on
// the user record (role, screening state, appointment reference) is
// server-owned and never bound from the payload.
type registerRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Age       int    `json:"age"`
	Sex       string `json:"sex"`
	BloodType string `json:"bloodType"`
	City      string `json:"city"`
}

// RegisterUserHandler handles POST /api/users/register.
func (h *HandlerBundle) RegisterUserHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	resp, err := h.UserSvc.RegisterUser(models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Age:       req.Age,
		Sex:       req.Sex,
		BloodType: req.BloodType,
		City:      req.City,
	})
	if err != nil {
		var taken *user.EmailTakenError
		if errors.As(err, &taken) {
			c.JSON(http.StatusConflict, gin.H{"error": taken.Error()})
			return
		}
		h.Logger.Error("RegisterUserHandler: registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateUserHandler handles POST /api/users/login.
func (h *HandlerBundle) AuthenticateUserHandler(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	resp, err := h.UserSvc.AuthenticateUser(body.Email, body.Password)
	if err != nil {
		var invalid *user.InvalidCredentialsError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": invalid.Error()})
			return
		}
		h.Logger.Error("AuthenticateUserHandler: login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to authenticate"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler handles DELETE /api/users/logout.
func (h *HandlerBundle) LogoutHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.UserSvc.RevokeAuthToken(userID); err != nil {
		h.Logger.Error("LogoutHandler: revoke failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// GetProfileHandler handles GET /api/users/me. The donor status in the
// response is derived on read.
func (h *HandlerBundle) GetProfileHandler(c *gin.Context) {
	userID := c.GetString("userID")
	profile, err := h.UserSvc.GetProfile(userID)
	if err != nil {
		h.Logger.Error("GetProfileHandler: failed to get profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetStatusHandler handles GET /api/users/me/status. It returns only the
// derived donor status, for the home screen's status card.
func (h *HandlerBundle) GetStatusHandler(c *gin.Context) {
	userID := c.GetString("userID")
	profile, err := h.UserSvc.GetProfile(userID)
	if err != nil {
		h.Logger.Error("GetStatusHandler: failed to derive status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to derive donor status"})
		return
	}
	c.JSON(http.StatusOK, profile.Status)
}

// UpdateProfileHandler handles PUT /api/users/me.
func (h *HandlerBundle) UpdateProfileHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	updated, err := h.UserSvc.UpdateProfile(userID, req)
	if err != nil {
		h.Logger.Error("UpdateProfileHandler: update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SubmitQuestionnaireHandler handles POST /api/users/me/questionnaire.
func (h *HandlerBundle) SubmitQuestionnaireHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var answers models.QuestionnaireAnswers
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	resp, err := h.UserSvc.SubmitQuestionnaire(userID, answers)
	if err != nil {
		h.Logger.Error("SubmitQuestionnaireHandler: submit failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store questionnaire"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetDeviceTokenHandler handles PUT /api/users/me/device.
func (h *HandlerBundle) SetDeviceTokenHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var body struct {
		DeviceToken string `json:"deviceToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	if err := h.UserSvc.SetDeviceToken(userID, body.DeviceToken); err != nil {
		h.Logger.Error("SetDeviceTokenHandler: store failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store device token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteUserHandler handles DELETE /api/users/me.
func (h *HandlerBundle) DeleteUserHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.UserSvc.DeleteUser(userID); err != nil {
		h.Logger.Error("DeleteUserHandler: delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
