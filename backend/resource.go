package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/tidwall/gjson"
)

// Endpoint describes how one entity is exposed by the REST backend.
type Endpoint struct {
	ListPath   string
	ItemPath   string
	CreatePath string
	UpdatePath string
	StatusPath string

	// PageSizeParam names the page size query parameter, "pageSize" when empty.
	PageSizeParam string

	// ItemResult is the gjson path of the record in single item responses, the body itself when empty.
	ItemResult string

	// FilterParams renames filter keys to the query parameters the backend expects.
	FilterParams map[string]string

	// PathFilter names the filter sent as the last list path segment instead of a query parameter.
	PathFilter string

	Shape      Shape
	ServerSort bool
	ReadOnly   bool
}

func (e Endpoint) pageSizeParam() string {

	if e.PageSizeParam == "" {
		return "pageSize"
	}

	return e.PageSizeParam
}

func (e Endpoint) createPath() string {

	if e.CreatePath == "" {
		return e.ItemPath
	}

	return e.CreatePath
}

func (e Endpoint) updatePath(itemID int64) string {

	path := e.UpdatePath
	if path == "" {
		path = e.ItemPath
	}

	return itemPath(path, itemID)
}

func itemPath(path string, itemID int64) string {
	return path + "/" + strconv.FormatInt(itemID, 10)
}

// Resource is a models.Model backed by the REST backend.
type Resource[T objects.Record] struct {
	client   *Client
	endpoint Endpoint
}

func NewResource[T objects.Record](client *Client, endpoint Endpoint) *Resource[T] {
	return &Resource[T]{client: client, endpoint: endpoint}
}

func (r *Resource[T]) Endpoint() Endpoint {
	return r.endpoint
}

func (r *Resource[T]) Capabilities() models.Capabilities {

	return models.Capabilities{
		ServerSort: r.endpoint.ServerSort,
		Status:     r.endpoint.StatusPath != "",
		Writable:   !r.endpoint.ReadOnly,
	}
}

func (r *Resource[T]) Search(ctx context.Context, q models.ListQuery) (models.PaginationData[T], error) {

	var result models.PaginationData[T]

	if err := q.Validate(); err != nil {
		return result, err
	}

	req := r.client.request(ctx)

	if r.endpoint.Shape.Paginated() {

		req.SetQueryParam("page", strconv.Itoa(q.Page))
		req.SetQueryParam(r.endpoint.pageSizeParam(), strconv.Itoa(q.PageSize))

		if term := q.Term(); term != "" {
			req.SetQueryParam("search", term)
		}
	}

	if r.endpoint.ServerSort && q.SortKey != "" {

		req.SetQueryParam("sortKey", q.SortKey)
		req.SetQueryParam("sortDirection", string(q.SortDirection))
	}

	listPath := r.endpoint.ListPath
	for key, value := range q.Filters {

		if key == r.endpoint.PathFilter {
			listPath += "/" + url.PathEscape(value)
			continue
		}

		if param, ok := r.endpoint.FilterParams[key]; ok {
			key = param
		}

		req.SetQueryParam(key, value)
	}

	resp, err := r.client.do(req, http.MethodGet, listPath)
	if err != nil {
		return result, err
	}

	return Decode[T](resp.Body(), r.endpoint.Shape, q)
}

func (r *Resource[T]) GetByID(ctx context.Context, itemID int64) (T, error) {

	var item T

	resp, err := r.client.do(r.client.request(ctx), http.MethodGet, itemPath(r.endpoint.ItemPath, itemID))
	if err != nil {

		if errors.HasCode(err, errors.ObjectIDNotFoundErrorCode) {
			return item, errors.ObjectIDNotFoundError.New(itemID)
		}

		return item, err
	}

	if err := r.decodeItem(resp.Body(), &item); err != nil {
		return item, err
	}

	if item.IsNil() {
		return item, errors.ObjectIDNotFoundError.New(itemID)
	}

	return item, nil
}

func (r *Resource[T]) Insert(ctx context.Context, item T) (T, error) {

	if r.endpoint.ReadOnly {
		return item, errors.ValidationFailedError.New("records of this kind cannot be created")
	}

	resp, err := r.client.do(r.client.request(ctx).SetBody(item), http.MethodPost, r.endpoint.createPath())
	if err != nil {
		return item, err
	}

	var created T
	if err := r.decodeItem(resp.Body(), &created); err != nil || created.IsNil() {
		//NOTE: Some create endpoints only answer with a message
		return item, nil
	}

	return created, nil
}

func (r *Resource[T]) Update(ctx context.Context, item T) error {

	if r.endpoint.ReadOnly {
		return errors.ValidationFailedError.New("records of this kind cannot be edited")
	}

	_, err := r.client.do(r.client.request(ctx).SetBody(item), http.MethodPut, r.endpoint.updatePath(item.GetID()))
	if errors.HasCode(err, errors.ObjectIDNotFoundErrorCode) {
		return errors.ObjectIDNotFoundError.New(item.GetID())
	}

	return err
}

func (r *Resource[T]) Delete(ctx context.Context, itemID int64) error {

	_, err := r.client.do(r.client.request(ctx), http.MethodDelete, itemPath(r.endpoint.ItemPath, itemID))
	if errors.HasCode(err, errors.ObjectIDNotFoundErrorCode) {
		return errors.ObjectIDNotFoundError.New(itemID)
	}

	return err
}

func (r *Resource[T]) SetStatus(ctx context.Context, itemID int64, status int) error {

	if r.endpoint.StatusPath == "" {
		return errors.ValidationFailedError.New("records of this kind have no status")
	}

	body := map[string]int{"Status": status}

	_, err := r.client.do(r.client.request(ctx).SetBody(body), http.MethodPut, itemPath(r.endpoint.StatusPath, itemID))
	if errors.HasCode(err, errors.ObjectIDNotFoundErrorCode) {
		return errors.ObjectIDNotFoundError.New(itemID)
	}

	return err
}

func (r *Resource[T]) decodeItem(body []byte, item *T) error {

	if !gjson.ValidBytes(body) {
		return errors.BackendResponseInvalidError.New(r.endpoint.ItemPath, "body is not JSON")
	}

	raw := gjson.ParseBytes(body)
	if r.endpoint.ItemResult != "" {
		raw = raw.Get(r.endpoint.ItemResult)
	}

	if !raw.IsObject() {
		return errors.BackendResponseInvalidError.New(r.endpoint.ItemPath, "record is not an object")
	}

	if err := json.Unmarshal([]byte(raw.Raw), item); err != nil {
		return errors.BackendResponseInvalidError.New(r.endpoint.ItemPath, err.Error())
	}

	return nil
}
