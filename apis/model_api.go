package apis

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/forms"
	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/supakorn-kn/peponi-admin/objects"
)

// ModelAPI serves the JSON CRUD routes of one entity from its data source.
type ModelAPI[Item objects.Record] struct {
	model    models.Model[Item]
	pageSize int
	filters  []string
}

// NewModelAPI creates the API of model. Only query parameters named in filters are passed on as list filters.
func NewModelAPI[Item objects.Record](model models.Model[Item], pageSize int, filters ...string) *ModelAPI[Item] {

	if pageSize < 1 || pageSize > models.MaxPageSize {
		pageSize = models.DefaultPageSize
	}

	return &ModelAPI[Item]{model: model, pageSize: pageSize, filters: filters}
}

func (api ModelAPI[Item]) Insert(ctx *gin.Context) (Item, error) {

	item, err := bindItem[Item](ctx)
	if err != nil {
		return item, err
	}

	return api.model.Insert(ctx.Request.Context(), item)
}

func (api ModelAPI[Item]) ReadOne(itemID string, ctx *gin.Context) (*Item, error) {

	id, err := ParseID(itemID)
	if err != nil {
		return nil, err
	}

	item, err := api.model.GetByID(ctx.Request.Context(), id)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (api ModelAPI[Item]) Read(ctx *gin.Context) (*models.PaginationData[Item], error) {

	var q models.ListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		return nil, errors.ValidationFailedError.New(err.Error())
	}

	if q.Page == 0 {
		q.Page = 1
	}

	if q.PageSize == 0 {
		q.PageSize = api.pageSize
	}

	for _, key := range api.filters {
		if value, ok := ctx.GetQuery(key); ok && value != "" {

			if q.Filters == nil {
				q.Filters = map[string]string{}
			}

			q.Filters[key] = value
		}
	}

	paginationData, err := api.model.Search(ctx.Request.Context(), q)
	if err != nil {
		return nil, err
	}

	return &paginationData, nil
}

func (api ModelAPI[Item]) Update(itemID string, ctx *gin.Context) error {

	id, err := ParseID(itemID)
	if err != nil {
		return err
	}

	item, err := bindItem[Item](ctx)
	if err != nil {
		return err
	}

	if setter, ok := any(item).(objects.IDSetter[Item]); ok {
		item = setter.WithID(id)
	} else if item.GetID() != id {
		return errors.ValidationFailedError.New("id in path and body differ")
	}

	return api.model.Update(ctx.Request.Context(), item)
}

func (api ModelAPI[Item]) Delete(itemID string, ctx *gin.Context) error {

	id, err := ParseID(itemID)
	if err != nil {
		return err
	}

	return api.model.Delete(ctx.Request.Context(), id)
}

type statusBody struct {
	Status *int `json:"Status"`
}

func (api ModelAPI[Item]) SetStatus(itemID string, ctx *gin.Context) error {

	id, err := ParseID(itemID)
	if err != nil {
		return err
	}

	var body statusBody
	if err := ctx.ShouldBindJSON(&body); err != nil || body.Status == nil {
		return errors.ValidationFailedError.New("Status is required")
	}

	if *body.Status != objects.StatusActive && *body.Status != objects.StatusInactive {
		return errors.ValidationFailedError.New("Status must be 0 or 1")
	}

	return api.model.SetStatus(ctx.Request.Context(), id, *body.Status)
}

// ParseID parses a record identifier from a path segment.
func ParseID(raw string) (int64, error) {

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ObjectIDNotFoundError.New(raw)
	}

	return id, nil
}

func bindItem[Item any](ctx *gin.Context) (Item, error) {

	var item Item
	if err := ctx.ShouldBindJSON(&item); err != nil {
		return item, errors.ValidationFailedError.New(err.Error())
	}

	item = forms.Normalize(item)
	if fields := forms.Validate(item); len(fields) > 0 {
		return item, fields.AsError()
	}

	return item, nil
}
