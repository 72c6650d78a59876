package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/peponi-admin/backend"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/forms"
	"github.com/supakorn-kn/peponi-admin/middlewares"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/supakorn-kn/peponi-admin/screen"
)

// Accounts reads and updates the account of the signed in admin.
type Accounts interface {
	Profile(ctx context.Context, adminID int64) (backend.Admin, error)
	ChangePassword(ctx context.Context, change objects.PasswordChange) error
}

type profilePage struct {
	layout
	Account backend.Admin
}

type passwordPage struct {
	layout
	Error  string
	Errors forms.FieldErrors
}

// Account serves the profile page and the change password form.
func (d *Dashboard) Account(group *gin.RouterGroup, accounts Accounts) {

	group.GET("profile", func(c *gin.Context) {

		admin, ok := middlewares.AdminFrom(c)
		if !ok {
			d.renderError(c, "profile", errors.UnauthorizedError.New())
			return
		}

		account, err := accounts.Profile(c.Request.Context(), admin.AdminID)
		if err != nil {
			d.renderError(c, "profile", err)
			return
		}

		page := profilePage{layout: d.layout(c, "Profile", "profile"), Account: account}
		if c.Query("changed") != "" {
			page.Notices = append(page.Notices, screen.SuccessNotice("Password changed"))
		}

		c.HTML(http.StatusOK, "profile.html", page)
	})

	group.GET("change-password", func(c *gin.Context) {
		c.HTML(http.StatusOK, "password.html", passwordPage{layout: d.layout(c, "Change password", "password")})
	})

	group.POST("change-password", func(c *gin.Context) {

		admin, ok := middlewares.AdminFrom(c)
		if !ok {
			d.renderError(c, "password", errors.UnauthorizedError.New())
			return
		}

		if err := c.Request.ParseForm(); err != nil {
			d.renderError(c, "password", errors.ValidationFailedError.New(err.Error()))
			return
		}

		page := passwordPage{layout: d.layout(c, "Change password", "password")}

		change, fieldErrors, err := forms.Decode[objects.PasswordChange](c.Request.PostForm)
		if err != nil {
			page.Error = errorMessage(err)
			c.HTML(http.StatusBadRequest, "password.html", page)
			return
		}

		if len(fieldErrors) > 0 {
			page.Errors = fieldErrors
			c.HTML(http.StatusBadRequest, "password.html", page)
			return
		}

		change.AdminID = admin.AdminID

		if err := accounts.ChangePassword(c.Request.Context(), change); err != nil {

			if !errors.HasCode(err, errors.ValidationFailedErrorCode) {
				d.renderError(c, "password", err)
				return
			}

			page.Error = errorMessage(err)
			c.HTML(http.StatusBadRequest, "password.html", page)
			return
		}

		c.Redirect(http.StatusSeeOther, "/dashboard/profile?changed=1")
	})
}
