package apis

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/peponi-admin/backend"
	"github.com/supakorn-kn/peponi-admin/env"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/ulule/limiter/v3"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (backend.LoginResult, error)
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// AuthAPI signs admins in and out. The bearer token is kept in an HttpOnly cookie.
type AuthAPI struct {
	authenticator Authenticator
	limiter       *limiter.Limiter
	config        env.AuthConfig
	onLogout      func(ctx *gin.Context)
}

func NewAuthAPI(authenticator Authenticator, lim *limiter.Limiter, config env.AuthConfig, onLogout func(ctx *gin.Context)) *AuthAPI {
	return &AuthAPI{authenticator: authenticator, limiter: lim, config: config, onLogout: onLogout}
}

// Login throttles attempts per client address, checks the credentials and stores the token cookie.
func (api *AuthAPI) Login(ctx *gin.Context, username, password string) (backend.LoginResult, error) {

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return backend.LoginResult{}, errors.ValidationFailedError.New("Username and password are required")
	}

	if api.limiter != nil {

		limit, err := api.limiter.Get(ctx.Request.Context(), "login:"+ctx.ClientIP())
		if err != nil {
			return backend.LoginResult{}, errors.UnknownError.New(err)
		}

		ctx.Header("X-RateLimit-Remaining", strconv.FormatInt(limit.Remaining, 10))
		if limit.Reached {
			retryAfter := time.Until(time.Unix(limit.Reset, 0)).Round(time.Second)
			return backend.LoginResult{}, errors.TooManyRequestsError.New(retryAfter)
		}
	}

	result, err := api.authenticator.Login(ctx.Request.Context(), username, password)
	if err != nil {
		return result, err
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(api.config.CookieName, result.Token, int((2 * time.Hour).Seconds()), "/", "", api.config.Secure, true)

	return result, nil
}

func (api *AuthAPI) Logout(ctx *gin.Context) {

	ctx.SetCookie(api.config.CookieName, "", -1, "/", "", api.config.Secure, true)
	if api.onLogout != nil {
		api.onLogout(ctx)
	}
}

func RegisterAuthAPI(api *AuthAPI, group *gin.RouterGroup) {

	group.POST("login", func(ctx *gin.Context) {

		var req loginRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			WriteErrorJSON(ctx, errors.ValidationFailedError.New("Username and password are required"))
			return
		}

		result, err := api.Login(ctx, req.Username, req.Password)
		if err != nil {
			WriteErrorJSON(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, CRUDResponse{Result: result.Admin})
	})

	group.POST("logout", func(ctx *gin.Context) {

		api.Logout(ctx)
		ctx.JSON(http.StatusOK, OKResponse)
	})
}
