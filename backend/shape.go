package backend

import (
	"encoding/json"

	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/tidwall/gjson"
)

// Shape locates the record array and pagination totals inside a list response.
// Paths use gjson syntax; an empty Items path means the body itself is the array.
type Shape struct {
	Items      string
	TotalPages string
	TotalCount string
}

// Paginated reports whether the endpoint pages on the server.
func (s Shape) Paginated() bool {
	return s.TotalPages != "" || s.TotalCount != ""
}

// Decode normalizes a list response body into PaginationData.
// Unpaginated endpoints return every record, so filtering and paging are applied here.
func Decode[T any](body []byte, shape Shape, q models.ListQuery) (models.PaginationData[T], error) {

	var result models.PaginationData[T]

	if !gjson.ValidBytes(body) {
		return result, errInvalidBody("body is not JSON")
	}

	items := gjson.ParseBytes(body)
	if shape.Items != "" {
		items = items.Get(shape.Items)
	}

	if items.Exists() && !items.IsArray() && items.Type != gjson.Null {
		return result, errInvalidBody("records at " + shape.Items + " are not an array")
	}

	rawItems := items.Array()
	if !shape.Paginated() {
		rawItems = filterItems(rawItems, q.Term(), q.Match)
	}

	//NOTE: Endpoints reporting only total pages never tell the exact count, so it stays 0 for them
	var count int
	switch {
	case shape.TotalCount != "":
		count = int(gjson.GetBytes(body, shape.TotalCount).Int())
	case !shape.Paginated():
		count = len(rawItems)
	}

	totalPages := models.TotalPages(count, q.PageSize)
	if shape.TotalPages != "" {
		totalPages = int(gjson.GetBytes(body, shape.TotalPages).Int())
	}

	if !shape.Paginated() {
		rawItems = pageItems(rawItems, q)
	}

	data := make([]T, 0, len(rawItems))
	for _, raw := range rawItems {

		var item T
		if err := json.Unmarshal([]byte(raw.Raw), &item); err != nil {
			return result, errInvalidBody(err.Error())
		}

		data = append(data, item)
	}

	result = models.PaginationData[T]{
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
		Count:      count,
		Data:       data,
	}

	return result, nil
}

func filterItems(items []gjson.Result, term string, matchType models.MatchType) []gjson.Result {

	if term == "" {
		return items
	}

	var filtered []gjson.Result
	for _, item := range items {

		matched := false
		item.ForEach(func(_, value gjson.Result) bool {

			if value.Type == gjson.String && matchType.Matches(value.Str, term) {
				matched = true
				return false
			}

			return true
		})

		if matched {
			filtered = append(filtered, item)
		}
	}

	return filtered
}

func pageItems(items []gjson.Result, q models.ListQuery) []gjson.Result {

	offset := q.Offset()
	if offset >= len(items) {
		return nil
	}

	end := offset + q.PageSize
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end]
}

func extractMessage(body []byte) string {

	if !gjson.ValidBytes(body) {
		return ""
	}

	for _, path := range []string{"message", "error", "error.message"} {

		if value := gjson.GetBytes(body, path); value.Type == gjson.String {
			return value.Str
		}
	}

	return ""
}
