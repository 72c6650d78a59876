package dashboard

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/peponi-admin/apis"
	"github.com/supakorn-kn/peponi-admin/backend"
	"github.com/supakorn-kn/peponi-admin/catalog"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/idmask"
	"github.com/supakorn-kn/peponi-admin/metrics"
	"github.com/supakorn-kn/peponi-admin/middlewares"
	"github.com/supakorn-kn/peponi-admin/screen"
	"github.com/supakorn-kn/peponi-admin/session"
)

const (
	BasePath  = "/dashboard"
	LoginPath = "/login"

	// searchWait bounds how long a search request waits for its debounced fetch.
	searchWait = 5 * time.Second
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the dashboard pages with the sprig function set.
func Templates() (*template.Template, error) {

	funcs := sprig.FuncMap()
	funcs["entityPath"] = entityPath

	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

type Options struct {
	PageSize int
	Debounce time.Duration
	Metrics  *metrics.Metrics
}

// Dashboard serves the HTML back office. Each session keeps the list screen it shows between requests.
type Dashboard struct {
	sessions *session.Manager
	masker   *idmask.Masker
	auth     *apis.AuthAPI
	opts     Options
}

func New(sessions *session.Manager, masker *idmask.Masker, auth *apis.AuthAPI, opts Options) *Dashboard {
	return &Dashboard{sessions: sessions, masker: masker, auth: auth, opts: opts}
}

type layout struct {
	Title   string
	Active  string
	Nav     []catalog.Meta
	Admin   backend.Admin
	Notices []screen.Notice
}

func (d *Dashboard) layout(c *gin.Context, title, active string) layout {

	admin, _ := middlewares.AdminFrom(c)
	return layout{Title: title, Active: active, Nav: catalog.All(), Admin: admin}
}

type loginPage struct {
	layout
	Username string
	Next     string
	Error    string
}

// RegisterLogin serves the sign in form and the sign out action outside the protected group.
func (d *Dashboard) RegisterLogin(router gin.IRouter) {

	router.GET(LoginPath, func(c *gin.Context) {

		c.HTML(http.StatusOK, "login.html", loginPage{
			layout: layout{Title: "Sign in"},
			Next:   safeNext(c.Query("next")),
		})
	})

	router.POST(LoginPath, func(c *gin.Context) {

		username := c.PostForm("username")
		next := safeNext(c.PostForm("next"))

		if _, err := d.auth.Login(c, username, c.PostForm("password")); err != nil {

			c.HTML(apis.StatusCode(err), "login.html", loginPage{
				layout:   layout{Title: "Sign in"},
				Username: username,
				Next:     next,
				Error:    errorMessage(err),
			})
			return
		}

		c.Redirect(http.StatusSeeOther, next)
	})

	router.POST("/logout", d.sessions.Middleware(), func(c *gin.Context) {

		d.auth.Logout(c)
		c.Redirect(http.StatusSeeOther, LoginPath)
	})
}

func entityPath(name string, parts ...string) string {
	return strings.Join(append([]string{BasePath, name}, parts...), "/")
}

// sectionPath is the list of the entity called active, or the home page for the other pages.
func sectionPath(active string) string {

	for _, meta := range catalog.All() {
		if meta.Name == active {
			return entityPath(active)
		}
	}

	return BasePath
}

// safeNext keeps redirects after sign in on this site.
func safeNext(next string) string {

	parsed, err := url.Parse(next)
	if next == "" || err != nil || parsed.IsAbs() || parsed.Host != "" || !strings.HasPrefix(parsed.Path, "/") {
		return BasePath
	}

	return parsed.RequestURI()
}

func errorMessage(err error) string {

	if baseErr, ok := errors.TryAssertError(err); ok {
		return baseErr.Message
	}

	return "Something went wrong"
}

// navigation carries the page a row action wants to open out of the table callbacks.
type navigation struct {
	target string
}

type navigationKey struct{}

func withNavigation(ctx context.Context) (context.Context, *navigation) {

	nav := &navigation{}
	return context.WithValue(ctx, navigationKey{}, nav), nav
}

func navigate(ctx context.Context, target string) {

	if nav, ok := ctx.Value(navigationKey{}).(*navigation); ok {
		nav.target = target
	}
}

type errorPage struct {
	layout
	Status  int
	Message string
	Back    string
}

func (d *Dashboard) renderError(c *gin.Context, active string, err error) {

	status := apis.StatusCode(err)
	if status >= http.StatusInternalServerError {
		slog.Error("dashboard request failed", "path", c.Request.URL.Path, "error", err)
	}

	page := errorPage{layout: d.layout(c, http.StatusText(status), active), Status: status, Message: errorMessage(err), Back: sectionPath(active)}
	c.HTML(status, "error.html", page)
}
