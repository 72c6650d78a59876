package screen

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/romdo/go-debounce"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/metrics"
	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/supakorn-kn/peponi-admin/table"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultDebounce = 500 * time.Millisecond
	deleteLimit     = 4
	fetchTimeout    = 30 * time.Second
)

type PaginationState struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
}

type Options struct {
	Entity   string
	Noun     string
	PageSize int
	Debounce time.Duration
	Filters  map[string]string
	Metrics  *metrics.Metrics
}

// Mounted is a screen of any record type held by a session.
type Mounted interface {
	Entity() string
	Close()
}

// Screen owns the pagination state and search term of one list and keeps its table in sync with the data source.
type Screen[R objects.Record] struct {
	mu sync.Mutex

	entity  string
	model   models.Model[R]
	table   *table.Controller[R]
	metrics *metrics.Metrics

	state   PaginationState
	term    string
	sortKey string
	sortDir models.SortDirection
	filters map[string]string
	rows    []R
	loaded  bool

	issued  uint64
	notices []Notice
	waiters []chan struct{}

	// searchCtx carries the request values, such as the backend token, into debounced fetches.
	searchCtx      context.Context
	debounced      func()
	cancelDebounce func()
}

// New creates a screen for model. Pagination, search and delete callbacks of config are wired to the screen;
// the caller supplies columns, key and the edit and view callbacks.
func New[R objects.Record](model models.Model[R], config table.Config[R], opts Options) *Screen[R] {

	if opts.PageSize < 1 || opts.PageSize > models.MaxPageSize {
		opts.PageSize = models.DefaultPageSize
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	if opts.Noun == "" {
		opts.Noun = opts.Entity
	}

	s := &Screen[R]{
		entity:  opts.Entity,
		model:   model,
		metrics: opts.Metrics,
		state:   PaginationState{Page: 1, PageSize: opts.PageSize},
		filters: maps.Clone(opts.Filters),

		searchCtx: context.Background(),
	}

	if config.Key == nil {
		config.Key = objects.Key[R]
	}

	config.Noun = opts.Noun
	config.OnPage = s.SetPage
	config.OnSearch = func(term string) { s.SetSearchTerm(term) }
	config.OnDeleteOne = s.DeleteOne
	config.OnDeleteMany = s.DeleteMany

	s.table = table.New(config)
	s.debounced, s.cancelDebounce = debounce.New(opts.Debounce, s.refresh)

	return s
}

func (s *Screen[R]) Entity() string {
	return s.entity
}

func (s *Screen[R]) Table() *table.Controller[R] {
	return s.table
}

func (s *Screen[R]) Capabilities() models.Capabilities {
	return models.CapabilitiesOf(s.model)
}

// Close stops a pending debounced search and releases everyone waiting on it.
func (s *Screen[R]) Close() {

	s.cancelDebounce()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseWaiters()
}

type State[R objects.Record] struct {
	Pagination    PaginationState
	SearchTerm    string
	SortKey       string
	SortDirection models.SortDirection
	Filters       map[string]string
	Rows          []R
	Loaded        bool
}

func (s *Screen[R]) State() State[R] {

	s.mu.Lock()
	defer s.mu.Unlock()

	return State[R]{
		Pagination:    s.state,
		SearchTerm:    s.term,
		SortKey:       s.sortKey,
		SortDirection: s.sortDir,
		Filters:       maps.Clone(s.filters),
		Rows:          append([]R(nil), s.rows...),
		Loaded:        s.loaded,
	}
}

// Load fetches the current page with the current query.
func (s *Screen[R]) Load(ctx context.Context) error {
	return s.fetch(ctx)
}

func (s *Screen[R]) SetPage(ctx context.Context, page int) error {

	s.mu.Lock()

	if page < 1 || page > max(s.state.TotalPages, 1) {
		s.mu.Unlock()
		return errors.CurrentPageInvalidError.New()
	}

	s.state.Page = page
	s.mu.Unlock()

	return s.fetch(ctx)
}

func (s *Screen[R]) SetPageSize(ctx context.Context, pageSize int) error {

	if pageSize < 1 || pageSize > models.MaxPageSize {
		return errors.PageSizeInvalidError.New(models.MaxPageSize)
	}

	s.mu.Lock()
	s.state.PageSize = pageSize
	s.state.Page = 1
	s.mu.Unlock()

	return s.fetch(ctx)
}

// SetFilter narrows the list by an exact field value such as a status tab. An empty value removes the filter.
func (s *Screen[R]) SetFilter(ctx context.Context, key, value string) error {

	s.mu.Lock()

	if s.filters == nil {
		s.filters = map[string]string{}
	}

	if value == "" {
		delete(s.filters, key)
	} else {
		s.filters[key] = value
	}

	s.state.Page = 1
	s.mu.Unlock()

	return s.fetch(ctx)
}

// ToggleSort reorders the current page by columnID. Data sources sorting on the server are asked for the sorted page too.
func (s *Screen[R]) ToggleSort(ctx context.Context, columnID string) error {

	direction, ok := s.table.ToggleSort(columnID)
	if !ok {
		return errors.SortKeyInvalidError.New(columnID)
	}

	if !s.Capabilities().ServerSort {

		s.mu.Lock()
		s.sortKey, s.sortDir = columnID, direction
		s.mu.Unlock()

		return nil
	}

	return s.SetSort(ctx, columnID, direction)
}

func (s *Screen[R]) SetSort(ctx context.Context, key string, direction models.SortDirection) error {

	s.mu.Lock()
	s.sortKey, s.sortDir = key, direction
	s.mu.Unlock()

	return s.fetch(ctx)
}

// SetSearchTerm stores term and schedules a debounced refresh from the first page.
// The returned channel is closed once the next state lands.
func (s *Screen[R]) SetSearchTerm(term string) <-chan struct{} {
	return s.SearchFrom(context.Background(), term)
}

// SearchFrom is SetSearchTerm for a search typed in the request of ctx. The debounced fetch keeps the values
// of ctx but not its cancellation.
func (s *Screen[R]) SearchFrom(ctx context.Context, term string) <-chan struct{} {

	done := make(chan struct{})

	s.mu.Lock()
	s.searchCtx = context.WithoutCancel(ctx)
	s.term = term
	s.state.Page = 1
	s.waiters = append(s.waiters, done)
	s.mu.Unlock()

	s.table.SetSearchTerm(term)
	s.debounced()

	return done
}

func (s *Screen[R]) refresh() {

	s.mu.Lock()
	base := s.searchCtx
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(base, fetchTimeout)
	defer cancel()

	if err := s.fetch(ctx); err != nil {
		slog.Warn("debounced search failed", "entity", s.entity, "error", err)
	}
}

func (s *Screen[R]) query() models.ListQuery {

	return models.ListQuery{
		Page:          s.state.Page,
		PageSize:      s.state.PageSize,
		Search:        s.term,
		SortKey:       s.sortKey,
		SortDirection: s.sortDir,
		Filters:       maps.Clone(s.filters),
	}
}

// fetch issues a request tagged with a new sequence number. Its result is applied only if no newer request was
// issued in the meantime. A failed request leaves the loaded rows untouched.
func (s *Screen[R]) fetch(ctx context.Context) error {

	s.mu.Lock()
	s.issued++
	sequence := s.issued
	q := s.query()
	serverSort := s.sortKey != ""
	s.mu.Unlock()

	if serverSort && !s.Capabilities().ServerSort {
		q.SortKey, q.SortDirection = "", ""
	}

	result, err := s.model.Search(ctx, q)

	s.mu.Lock()

	if sequence != s.issued {
		s.mu.Unlock()
		s.metrics.ScreenFetch(s.entity, "stale")
		slog.Debug("stale list response discarded", "entity", s.entity, "sequence", sequence, "latest", s.issued)
		return nil
	}

	if err != nil {

		s.pushNotice(ErrorNotice(fmt.Sprintf("Failed to fetch %s: %s", s.entity, err.Error())))
		s.releaseWaiters()
		s.mu.Unlock()

		s.metrics.ScreenFetch(s.entity, "failed")
		slog.Error("list fetch failed", "entity", s.entity, "error", err)
		return err
	}

	//NOTE: Deleting the last rows of the last page leaves the cursor past the end
	if last := max(result.TotalPages, 1); s.state.Page > last {
		s.state.Page = last
		s.mu.Unlock()
		return s.fetch(ctx)
	}

	s.rows = result.Data
	s.loaded = true
	s.state.TotalPages = result.TotalPages
	s.state.TotalCount = result.Count

	s.table.SetData(result.Data)
	s.table.SetPagination(s.state.Page, s.state.TotalPages)

	s.releaseWaiters()
	s.mu.Unlock()

	s.metrics.ScreenFetch(s.entity, "applied")
	return nil
}

func (s *Screen[R]) releaseWaiters() {

	for _, waiter := range s.waiters {
		close(waiter)
	}

	s.waiters = nil
}

// DeleteOne deletes record and reloads the list once the data source confirms.
func (s *Screen[R]) DeleteOne(ctx context.Context, record R) error {

	if err := s.model.Delete(ctx, record.GetID()); err != nil {

		s.notify(ErrorNotice(fmt.Sprintf("Failed to delete %s: %s", s.entity, err.Error())))
		return err
	}

	s.notify(SuccessNotice(fmt.Sprintf("Deleted %s %d", s.entity, record.GetID())))
	return s.fetch(ctx)
}

// DeleteMany deletes records with bounded parallelism. Every record is attempted; the list is reloaded when
// at least one deletion succeeded.
func (s *Screen[R]) DeleteMany(ctx context.Context, records []R) error {

	var (
		g        errgroup.Group
		mu       sync.Mutex
		failures int
	)

	g.SetLimit(deleteLimit)

	for _, record := range records {

		g.Go(func() error {

			err := s.model.Delete(ctx, record.GetID())
			if err != nil {

				mu.Lock()
				failures++
				mu.Unlock()

				slog.Warn("bulk delete item failed", "entity", s.entity, "id", record.GetID(), "error", err)
			}

			return err
		})
	}

	err := g.Wait()

	switch {
	case failures == 0:
		s.notify(SuccessNotice(fmt.Sprintf("Deleted %d %s records", len(records), s.entity)))
	case failures == len(records):
		s.notify(ErrorNotice(fmt.Sprintf("Failed to delete %d %s records", failures, s.entity)))
		return err
	default:
		s.notify(ErrorNotice(fmt.Sprintf("Failed to delete %d of %d %s records", failures, len(records), s.entity)))
	}

	if fetchErr := s.fetch(ctx); fetchErr != nil && err == nil {
		return fetchErr
	}

	return err
}

// Save creates record when it has no identifier yet and updates it otherwise.
func (s *Screen[R]) Save(ctx context.Context, record R) (R, error) {

	var err error
	if record.GetID() == 0 {
		record, err = s.model.Insert(ctx, record)
	} else {
		err = s.model.Update(ctx, record)
	}

	if err != nil {

		s.notify(ErrorNotice(fmt.Sprintf("Failed to save %s: %s", s.entity, err.Error())))
		return record, err
	}

	s.notify(SuccessNotice(fmt.Sprintf("Saved %s", s.entity)))
	return record, s.fetch(ctx)
}

// ToggleStatus flips the active flag of record on the data source.
func (s *Screen[R]) ToggleStatus(ctx context.Context, record R) error {

	holder, ok := any(record).(objects.StatusHolder)
	if !ok || !s.Capabilities().Status {
		return errors.ValidationFailedError.New(s.entity + " has no status")
	}

	status := objects.ToggledStatus(holder.GetStatus())
	if err := s.model.SetStatus(ctx, record.GetID(), status); err != nil {

		s.notify(ErrorNotice(fmt.Sprintf("Failed to update status: %s", err.Error())))
		return err
	}

	s.notify(SuccessNotice("Status updated successfully"))
	return s.fetch(ctx)
}

// Get returns the authoritative copy of a record from the data source.
func (s *Screen[R]) Get(ctx context.Context, itemID int64) (R, error) {
	return s.model.GetByID(ctx, itemID)
}

func (s *Screen[R]) notify(notice Notice) {

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pushNotice(notice)
}
