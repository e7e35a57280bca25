package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/avolkov/shop-api/config"
	"github.com/avolkov/shop-api/internal/application"
	"github.com/avolkov/shop-api/pkg/helpers"
	"github.com/avolkov/shop-api/pkg/mailer"
	"github.com/avolkov/shop-api/pkg/response"
	"github.com/avolkov/shop-api/pkg/validation"
)

type AuthHandler struct {
	Auth   *application.AuthService
	Cfg    *config.Config
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher
}

func NewAuthHandler(auth *application.AuthService, cfg *config.Config, logger *logrus.Logger, pub *helpers.RabbitPublisher) *AuthHandler {
	return &AuthHandler{Auth: auth, Cfg: cfg, Logger: logger, Pub: pub}
}

type credentialsRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignIn handles POST /auth/sign_in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Auth.SignIn(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrLoginNotExist) || errors.Is(err, application.ErrInvalidPassword) {
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("sign in failed")
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": res.Token})
}

// SignUp handles POST /auth/sign_up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Auth.SignUp(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrLoginAlreadyExist) {
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("sign up failed")
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}

	link := h.Cfg.ActivationURL + "?token=" + res.ActivationToken
	h.enqueueActivationEmail(c, req.Login, link)
	c.JSON(http.StatusOK, gin.H{"activation_link": link})
}

// enqueueActivationEmail hands the activation link to the email worker.
// Best effort: a broker hiccup must not fail the sign-up that already
// committed.
func (h *AuthHandler) enqueueActivationEmail(c *gin.Context, to, link string) {
	if h.Pub == nil || h.Cfg == nil || !h.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:      to,
		Subject: "Activate your account",
		Text:    "Follow the link to activate your account: " + link,
	}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil {
		h.Logger.WithError(err).WithField("login", to).Warn("activation email enqueue failed")
	}
}
