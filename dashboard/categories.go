package dashboard

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/peponi-admin/apis"
	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/supakorn-kn/peponi-admin/objects"
)

// CategoryExists reports whether a category named name exists, ignoring case and surrounding spaces.
func CategoryExists(ctx context.Context, model models.Model[objects.Category], name string) (bool, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	q := models.ListQuery{Page: 1, PageSize: models.MaxPageSize, Search: name}
	for {

		result, err := model.Search(ctx, q)
		if err != nil {
			return false, err
		}

		for _, category := range result.Data {
			if strings.EqualFold(strings.TrimSpace(category.CategoryName), name) {
				return true, nil
			}
		}

		if q.Page >= result.TotalPages {
			return false, nil
		}

		q.Page++
	}
}

// RegisterCategoryCheck serves the name check the category form runs before saving.
func RegisterCategoryCheck(group *gin.RouterGroup, model models.Model[objects.Category]) {

	group.GET("categories/check", func(c *gin.Context) {

		exists, err := CategoryExists(c.Request.Context(), model, c.Query("name"))
		if err != nil {
			apis.WriteErrorJSON(c, err)
			return
		}

		c.JSON(http.StatusOK, apis.CRUDResponse{Result: gin.H{"exists": exists}})
	})
}
