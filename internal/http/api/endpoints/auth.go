package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/warden/internal/db"
	"github.com/Nixie-Tech-LLC/warden/internal/http/api"
	"github.com/Nixie-Tech-LLC/warden/internal/http/api/packets"
	"github.com/Nixie-Tech-LLC/warden/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

type AccountController struct {
	jwtSecret string
	store     db.Store
}

func NewAccountController(secret string, store db.Store) *AccountController {
	return &AccountController{jwtSecret: secret, store: store}
}

// AuthPublicModule mounts the endpoints reachable without a token.
func AuthPublicModule(secret string, store db.Store) api.Module {
	ctl := NewAccountController(secret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/login", ctl.login)
	})
}

func AuthSessionModule(secret string, store db.Store) api.Module {
	ctl := NewAccountController(secret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/me", ctl.currentProfile)
	})
}

// POST /api/auth/login
func (a *AccountController) login(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	invalid := &api.APIError{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidCredentials.Error()}
	user, err := a.store.GetUserByUsername(request.Username)
	if err != nil || user == nil || !user.IsActive {
		log.Warn().Str("username", request.Username).Msg("login rejected")
		return nil, invalid
	}
	if !middleware.CheckPassword(user.HashedPassword, request.Password) {
		log.Warn().Str("username", request.Username).Msg("login rejected: bad password")
		return nil, invalid
	}

	token, err := middleware.GenerateJWT(user.ID, a.jwtSecret)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("could not generate JWT")
		return nil, api.Internal("something went wrong, please try again")
	}
	return packets.LoginResponse{Token: token}, nil
}

// GET /api/auth/me
func (a *AccountController) currentProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return packets.ProfileResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}
