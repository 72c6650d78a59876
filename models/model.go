package models

import (
	"context"
	"strings"

	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/objects"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type SortDirection string

const (
	SortASC  SortDirection = "asc"
	SortDESC SortDirection = "desc"
)

// Flip returns the opposite direction. An unset direction flips to descending.
func (d SortDirection) Flip() SortDirection {

	if d == SortDESC {
		return SortASC
	}

	return SortDESC
}

// ListQuery is the page request every list screen sends to its data source.
type ListQuery struct {
	Page          int               `form:"page" json:"page"`
	PageSize      int               `form:"pageSize" json:"pageSize"`
	Search        string            `form:"search" json:"search,omitempty"`
	SortKey       string            `form:"sortKey" json:"sortKey,omitempty"`
	SortDirection SortDirection     `form:"sortDirection" json:"sortDirection,omitempty"`
	Match         MatchType         `form:"match" json:"match,omitempty"`
	Filters       map[string]string `form:"-" json:"filters,omitempty"`
}

func (q ListQuery) Validate() error {

	if q.Page < 1 {
		return errors.CurrentPageInvalidError.New()
	}

	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		return errors.PageSizeInvalidError.New(MaxPageSize)
	}

	if !q.Match.Valid() {
		return errors.MatchTypeInvalidError.New(q.Match)
	}

	return nil
}

func (q ListQuery) Offset() int {

	if q.Page < 1 {
		return 0
	}

	return (q.Page - 1) * q.PageSize
}

// Term returns the trimmed search term.
func (q ListQuery) Term() string {
	return strings.TrimSpace(q.Search)
}

// PaginationData is the normalized list response of every data source.
type PaginationData[T any] struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	Count      int `json:"count"`
	Data       []T `json:"data"`
}

// TotalPages computes how many pages of size pageSize hold count items.
func TotalPages(count, pageSize int) int {

	if count <= 0 || pageSize <= 0 {
		return 0
	}

	totalPages := count / pageSize
	if count%pageSize > 0 {
		totalPages++
	}

	return totalPages
}

// Model is a data source backing one admin screen.
type Model[T objects.Record] interface {
	Search(ctx context.Context, q ListQuery) (PaginationData[T], error)
	GetByID(ctx context.Context, itemID int64) (T, error)
	Insert(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, itemID int64) error
	SetStatus(ctx context.Context, itemID int64, status int) error
}

// Capabilities describes optional behavior of a data source.
type Capabilities struct {
	ServerSort bool
	Status     bool
	Writable   bool
}

// CapabilityReporter is implemented by models whose capabilities differ from the default.
type CapabilityReporter interface {
	Capabilities() Capabilities
}

// CapabilitiesOf returns what model reports, or a writable model without sorting or status when it reports nothing.
func CapabilitiesOf[T objects.Record](model Model[T]) Capabilities {

	if reporter, ok := model.(CapabilityReporter); ok {
		return reporter.Capabilities()
	}

	return Capabilities{Writable: true}
}
