package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Bombastion/taproom-offering-engine/pkg/resp"
	"github.com/Bombastion/taproom-offering-engine/utils"
)

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AuthController issues admin tokens. The password is only kept hashed.
type AuthController struct {
	passwordHash []byte
	secret       string
	ttl          time.Duration
	Log          logrus.FieldLogger
}

func NewAuthController(password, secret string, ttl time.Duration, log logrus.FieldLogger) (*AuthController, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthController{passwordHash: hash, secret: secret, ttl: ttl, Log: log}, nil
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(req.Password)); err != nil {
		a.Log.WithField("clientIp", c.ClientIP()).Warn("admin login failed")
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(utils.RoleAdmin, a.secret, a.ttl)
	if err != nil {
		resp.ServerError(c, a.Log, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "expiresIn": int64(a.ttl.Seconds())})
}
