package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/peponi-admin/confirm"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/supakorn-kn/peponi-admin/screen"
	"golang.org/x/sync/errgroup"
)

const featuredPath = BasePath + "/featured"

// FeaturedProducts manages the products shown in the storefront feature groups.
type FeaturedProducts interface {
	FeaturedProducts(ctx context.Context, group int) ([]objects.FeaturedProduct, error)
	FeatureCandidates(ctx context.Context, group int) ([]objects.FeaturedProduct, error)
	AddFeatured(ctx context.Context, group int, productID int64) error
	RemoveFeatured(ctx context.Context, featuredID int64) error
}

type featuredPage struct {
	layout
	Groups     []objects.FeatureGroup
	Group      objects.FeatureGroup
	Selected   []objects.FeaturedProduct
	Candidates []objects.FeaturedProduct

	Prompt   *confirm.Prompt
	Removing objects.FeaturedProduct
}

// Featured serves the feature group editor. Adding and removing redirect back to the group they changed.
func (d *Dashboard) Featured(group *gin.RouterGroup, featured FeaturedProducts) {

	group.GET("featured", func(c *gin.Context) {

		selected, err := featureGroup(c.DefaultQuery("group", "1"))
		if err != nil {
			d.renderError(c, "featured", err)
			return
		}

		page := featuredPage{
			layout: d.layout(c, "Featured products", "featured"),
			Groups: objects.FeatureGroups,
			Group:  selected,
		}

		g, ctx := errgroup.WithContext(c.Request.Context())

		g.Go(func() (err error) {
			page.Selected, err = featured.FeaturedProducts(ctx, selected.ID)
			return
		})

		g.Go(func() (err error) {
			page.Candidates, err = featured.FeatureCandidates(ctx, selected.ID)
			return
		})

		if err := g.Wait(); err != nil {
			d.renderError(c, "featured", err)
			return
		}

		page.Candidates = slices.DeleteFunc(page.Candidates, func(candidate objects.FeaturedProduct) bool {
			return slices.ContainsFunc(page.Selected, func(product objects.FeaturedProduct) bool {
				return product.ProductID == candidate.ProductID
			})
		})

		switch c.Query("done") {
		case "added":
			page.Notices = append(page.Notices, screen.SuccessNotice("Added to "+selected.Name))
		case "removed":
			page.Notices = append(page.Notices, screen.SuccessNotice("Removed from "+selected.Name))
		}

		if remove := c.Query("remove"); remove != "" {

			index := slices.IndexFunc(page.Selected, func(product objects.FeaturedProduct) bool {
				return strconv.FormatInt(product.FeaturedID, 10) == remove
			})

			if index < 0 {
				page.Notices = append(page.Notices, screen.ErrorNotice("The product is no longer featured in "+selected.Name))
			} else {

				prompt := confirm.DeletePrompt("featured product", 1)
				page.Prompt = &prompt
				page.Removing = page.Selected[index]
			}
		}

		c.HTML(http.StatusOK, "featured.html", page)
	})

	group.POST("featured/add", func(c *gin.Context) {

		selected, err := featureGroup(c.PostForm("group"))
		if err != nil {
			d.renderError(c, "featured", err)
			return
		}

		productID, err := strconv.ParseInt(c.PostForm("product"), 10, 64)
		if err != nil || productID < 1 {
			d.renderError(c, "featured", errors.ValidationFailedError.New("product must be a positive number"))
			return
		}

		if err := featured.AddFeatured(c.Request.Context(), selected.ID, productID); err != nil {
			d.renderError(c, "featured", err)
			return
		}

		c.Redirect(http.StatusSeeOther, featuredURL(selected.ID, "added"))
	})

	group.POST("featured/remove", func(c *gin.Context) {

		selected, err := featureGroup(c.PostForm("group"))
		if err != nil {
			d.renderError(c, "featured", err)
			return
		}

		if c.PostForm("answer") != "yes" {
			c.Redirect(http.StatusSeeOther, featuredURL(selected.ID, ""))
			return
		}

		featuredID, err := strconv.ParseInt(c.PostForm("featured"), 10, 64)
		if err != nil || featuredID < 1 {
			d.renderError(c, "featured", errors.ValidationFailedError.New("featured must be a positive number"))
			return
		}

		if err := featured.RemoveFeatured(c.Request.Context(), featuredID); err != nil {
			d.renderError(c, "featured", err)
			return
		}

		c.Redirect(http.StatusSeeOther, featuredURL(selected.ID, "removed"))
	})
}

func featureGroup(value string) (objects.FeatureGroup, error) {

	id, err := strconv.Atoi(value)
	if err != nil {
		return objects.FeatureGroup{}, errors.ValidationFailedError.New(fmt.Sprintf("unknown feature group %q", value))
	}

	group, ok := objects.FeatureGroupByID(id)
	if !ok {
		return objects.FeatureGroup{}, errors.ValidationFailedError.New(fmt.Sprintf("unknown feature group %q", value))
	}

	return group, nil
}

func featuredURL(group int, done string) string {

	query := url.Values{"group": {strconv.Itoa(group)}}
	if done != "" {
		query.Set("done", done)
	}

	return featuredPath + "?" + query.Encode()
}
