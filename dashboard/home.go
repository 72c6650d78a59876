package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/supakorn-kn/peponi-admin/screen"
)

// StatsSource computes the totals of the home page.
type StatsSource interface {
	Stats(ctx context.Context) (objects.Stats, error)
}

type homePage struct {
	layout
	Stats  objects.Stats
	Loaded bool
}

// Home serves the landing page of a signed in admin: the store totals and shortcuts to the common tasks.
func (d *Dashboard) Home(group *gin.RouterGroup, stats StatsSource) {

	group.GET("", func(c *gin.Context) {

		page := homePage{layout: d.layout(c, "Dashboard", "home")}

		totals, err := stats.Stats(c.Request.Context())
		if err != nil {

			//NOTE: The shortcuts stay usable while the totals are down
			slog.Warn("load dashboard stats failed", "error", err)
			page.Notices = append(page.Notices, screen.ErrorNotice("Store totals are unavailable: "+errorMessage(err)))
		} else {
			page.Stats = totals
			page.Loaded = true
		}

		c.HTML(http.StatusOK, "home.html", page)
	})
}
