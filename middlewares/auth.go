package middlewares

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/supakorn-kn/peponi-admin/apis"
	"github.com/supakorn-kn/peponi-admin/backend"
	"github.com/supakorn-kn/peponi-admin/errors"
)

const adminContextKey = "admin"

// Verifier tells whether a bearer token belongs to a signed in admin.
type Verifier interface {
	Verify(ctx context.Context, token string) (backend.Admin, error)
}

type AdminClaims struct {
	AdminID  int64  `json:"AdminID"`
	UserName string `json:"UserName"`
	jwt.RegisteredClaims
}

// JWTVerifier checks HS256 admin tokens with a shared secret without asking the backend.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (backend.Admin, error) {

	var claims AdminClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return backend.Admin{}, errors.UnauthorizedError.New()
	}

	return backend.Admin{AdminID: claims.AdminID, UserName: claims.UserName}, nil
}

type verified struct {
	admin   backend.Admin
	expires time.Time
}

type AuthOptions struct {
	CookieName string
	CacheTTL   time.Duration

	// OnUnauthorized answers requests without a valid token. JSON 401 when nil.
	OnUnauthorized gin.HandlerFunc
}

// Auth lets requests through only with a valid admin token, read from the cookie or the Authorization header.
// Positive answers of verifier are remembered for CacheTTL, never past the token expiry.
func Auth(verifier Verifier, opts AuthOptions) gin.HandlerFunc {

	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}

	if opts.OnUnauthorized == nil {
		opts.OnUnauthorized = func(c *gin.Context) {
			apis.WriteErrorJSON(c, errors.UnauthorizedError.New())
		}
	}

	cache := expirable.NewLRU[string, verified](1024, nil, opts.CacheTTL)

	return func(c *gin.Context) {

		token := tokenFrom(c, opts.CookieName)
		if token == "" {
			opts.OnUnauthorized(c)
			c.Abort()
			return
		}

		expires, ok := expiry(token)
		if !ok || time.Now().After(expires) {
			opts.OnUnauthorized(c)
			c.Abort()
			return
		}

		entry, ok := cache.Get(token)
		if !ok || time.Now().After(entry.expires) {

			admin, err := verifier.Verify(c.Request.Context(), token)
			if err != nil {

				if errors.HasCode(err, errors.UnauthorizedErrorCode) {
					opts.OnUnauthorized(c)
					c.Abort()
					return
				}

				apis.WriteErrorJSON(c, err)
				return
			}

			entry = verified{admin: admin, expires: expires}
			cache.Add(token, entry)
		}

		SetAdmin(c, entry.admin)
		c.Request = c.Request.WithContext(backend.WithToken(c.Request.Context(), token))

		c.Next()
	}
}

// SetAdmin records admin as the signed in admin of the request.
func SetAdmin(c *gin.Context, admin backend.Admin) {
	c.Set(adminContextKey, admin)
}

// AdminFrom returns the admin authenticated by Auth.
func AdminFrom(c *gin.Context) (backend.Admin, bool) {

	value, ok := c.Get(adminContextKey)
	if !ok {
		return backend.Admin{}, false
	}

	admin, ok := value.(backend.Admin)
	return admin, ok
}

func tokenFrom(c *gin.Context, cookieName string) string {

	if header := c.GetHeader("Authorization"); header != "" {

		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}

	if cookieName == "" {
		return ""
	}

	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}

	return token
}

// expiry reads the exp claim without checking the signature. Tokens without exp are verified again whenever their cache entry expires.
func expiry(token string) (time.Time, bool) {

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, false
	}

	if exp == nil {
		return time.Now().Add(24 * time.Hour), true
	}

	return exp.Time, true
}

// RedirectToLogin sends browsers to the login page, remembering where they were going.
func RedirectToLogin(c *gin.Context) {

	target := "/login"
	if c.Request.Method == http.MethodGet {
		target += "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
	}

	c.Redirect(http.StatusFound, target)
}
