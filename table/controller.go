package table

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/supakorn-kn/peponi-admin/confirm"
	"github.com/supakorn-kn/peponi-admin/models"
)

type Config[R any] struct {
	Columns []Column[R]

	// Key returns the row identity. Rows fall back to their position in the data when it is nil.
	Key func(R) string

	// Noun names one record in confirmation prompts.
	Noun string

	OnEdit       func(ctx context.Context, record R) error
	OnView       func(ctx context.Context, record R) error
	OnDeleteOne  func(ctx context.Context, record R) error
	OnDeleteMany func(ctx context.Context, records []R) error

	OnPage   func(ctx context.Context, page int) error
	OnSearch func(term string)

	EnableBulkDelete bool
}

type sortState struct {
	columnID  string
	direction models.SortDirection
}

// Controller keeps the sort and selection state of one page of records and turns it into a View.
// It performs no I/O; every action is handed to the configured callbacks.
type Controller[R any] struct {
	mu     sync.Mutex
	config Config[R]

	data  []R
	order []int

	page       int
	totalPages int
	searchTerm string

	sort       sortState
	selected   map[string]struct{}
	confirming bool
}

func New[R any](config Config[R]) *Controller[R] {

	if config.Noun == "" {
		config.Noun = "record"
	}

	return &Controller[R]{
		config:   config,
		page:     1,
		selected: map[string]struct{}{},
	}
}

// SetData replaces the current page. The selection is cleared and the active sort is applied to the new rows.
func (c *Controller[R]) SetData(rows []R) {

	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = slices.Clone(rows)
	c.selected = map[string]struct{}{}
	c.confirming = false
	c.applySort()
}

func (c *Controller[R]) SetPagination(page, totalPages int) {

	c.mu.Lock()
	defer c.mu.Unlock()

	c.totalPages = max(totalPages, 0)
	c.page = min(max(page, 1), max(c.totalPages, 1))
}

func (c *Controller[R]) SetSearchTerm(term string) {

	c.mu.Lock()
	defer c.mu.Unlock()

	c.searchTerm = term
}

// Search mirrors term and forwards it to OnSearch. Debouncing is the caller's concern.
func (c *Controller[R]) Search(term string) {

	c.SetSearchTerm(term)

	if c.config.OnSearch != nil {
		c.config.OnSearch(term)
	}
}

// GoToPage asks the page owner to move to page. Out of range pages and the current page are ignored.
func (c *Controller[R]) GoToPage(ctx context.Context, page int) error {

	c.mu.Lock()
	current, last := c.page, max(c.totalPages, 1)
	c.mu.Unlock()

	if page < 1 || page > last || page == current || c.config.OnPage == nil {
		return nil
	}

	return c.config.OnPage(ctx, page)
}

func (c *Controller[R]) Previous(ctx context.Context) error {

	c.mu.Lock()
	page := c.page
	c.mu.Unlock()

	return c.GoToPage(ctx, page-1)
}

func (c *Controller[R]) Next(ctx context.Context) error {

	c.mu.Lock()
	page := c.page
	c.mu.Unlock()

	return c.GoToPage(ctx, page+1)
}

func (c *Controller[R]) Edit(ctx context.Context, row int) error {
	return c.dispatch(ctx, row, c.config.OnEdit)
}

func (c *Controller[R]) View(ctx context.Context, row int) error {
	return c.dispatch(ctx, row, c.config.OnView)
}

func (c *Controller[R]) DeleteOne(ctx context.Context, row int) error {
	return c.dispatch(ctx, row, c.config.OnDeleteOne)
}

// Record returns the record shown at visible row.
func (c *Controller[R]) Record(row int) (R, bool) {

	c.mu.Lock()
	defer c.mu.Unlock()

	var record R
	if row < 0 || row >= len(c.order) {
		return record, false
	}

	return c.data[c.order[row]], true
}

func (c *Controller[R]) dispatch(ctx context.Context, row int, callback func(context.Context, R) error) error {

	record, ok := c.Record(row)
	if !ok || callback == nil {
		return nil
	}

	return callback(ctx, record)
}

func (c *Controller[R]) ToggleRow(key string) {

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasKey(key) {
		return
	}

	if _, ok := c.selected[key]; ok {
		delete(c.selected, key)
		return
	}

	c.selected[key] = struct{}{}
}

// ToggleAll selects exactly the rows of the current page, or clears the selection when they are all selected already.
func (c *Controller[R]) ToggleAll() {

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.allSelected() {
		c.selected = map[string]struct{}{}
		return
	}

	c.selected = make(map[string]struct{}, len(c.data))
	for i := range c.data {
		c.selected[c.keyAt(i)] = struct{}{}
	}
}

func (c *Controller[R]) IsSelected(key string) bool {

	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.selected[key]
	return ok
}

// Selected returns the selected records in data order.
func (c *Controller[R]) Selected() []R {

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.selectedRecords()
}

func (c *Controller[R]) ClearSelection() {

	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = map[string]struct{}{}
	c.confirming = false
}

// BeginDeleteSelected enters the confirming state and returns the prompt to show.
// It reports false when bulk delete is disabled or nothing is selected.
func (c *Controller[R]) BeginDeleteSelected() (confirm.Prompt, bool) {

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.config.EnableBulkDelete || len(c.selected) == 0 {
		return confirm.Prompt{}, false
	}

	c.confirming = true
	return confirm.DeletePrompt(c.config.Noun, len(c.selected)), true
}

func (c *Controller[R]) Confirming() bool {

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.confirming
}

// ResolveDeleteSelected answers the pending prompt. Accepting hands every selected record to OnDeleteMany
// in a single call and then clears the selection whatever the callback returned. Declining keeps the selection.
func (c *Controller[R]) ResolveDeleteSelected(ctx context.Context, accepted bool) error {

	c.mu.Lock()

	if !c.confirming {
		c.mu.Unlock()
		return nil
	}

	c.confirming = false
	if !accepted {
		c.mu.Unlock()
		return nil
	}

	records := c.selectedRecords()
	c.mu.Unlock()

	var err error
	if len(records) > 0 && c.config.OnDeleteMany != nil {
		err = c.config.OnDeleteMany(ctx, records)
	}

	c.ClearSelection()
	return err
}

// DeleteSelected asks confirmer before deleting the selection.
func (c *Controller[R]) DeleteSelected(ctx context.Context, confirmer confirm.Confirmer) error {

	prompt, ok := c.BeginDeleteSelected()
	if !ok {
		return nil
	}

	accepted, err := confirmer.Confirm(ctx, prompt)
	if err != nil {

		c.mu.Lock()
		c.confirming = false
		c.mu.Unlock()

		return err
	}

	return c.ResolveDeleteSelected(ctx, accepted)
}

// ToggleSort sorts the current page by columnID, ascending first and flipping on every further toggle.
func (c *Controller[R]) ToggleSort(columnID string) (models.SortDirection, bool) {

	c.mu.Lock()
	defer c.mu.Unlock()

	column, ok := c.column(columnID)
	if !ok || !column.Sortable || column.presentational() {
		return "", false
	}

	direction := models.SortASC
	if c.sort.columnID == columnID {
		direction = c.sort.direction.Flip()
	}

	c.sort = sortState{columnID: columnID, direction: direction}
	c.applySort()

	return direction, true
}

// Sort returns the active sort column and direction, empty when the page is in data order.
func (c *Controller[R]) Sort() (string, models.SortDirection) {

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sort.columnID, c.sort.direction
}

// applySort rebuilds the visible order from data order so equal keys keep their original relative order.
func (c *Controller[R]) applySort() {

	c.order = make([]int, len(c.data))
	for i := range c.order {
		c.order[i] = i
	}

	column, ok := c.column(c.sort.columnID)
	if !ok || column.presentational() {
		return
	}

	slices.SortStableFunc(c.order, func(a, b int) int {

		result := compare(column.Accessor(c.data[a]), column.Accessor(c.data[b]))
		if c.sort.direction == models.SortDESC {
			return -result
		}

		return result
	})
}

func (c *Controller[R]) column(columnID string) (Column[R], bool) {

	for _, column := range c.config.Columns {
		if column.ID == columnID && columnID != "" {
			return column, true
		}
	}

	return Column[R]{}, false
}

func (c *Controller[R]) keyAt(index int) string {

	if c.config.Key == nil {
		return strconv.Itoa(index)
	}

	return c.config.Key(c.data[index])
}

func (c *Controller[R]) hasKey(key string) bool {

	for i := range c.data {
		if c.keyAt(i) == key {
			return true
		}
	}

	return false
}

func (c *Controller[R]) allSelected() bool {

	if len(c.data) == 0 {
		return false
	}

	for i := range c.data {
		if _, ok := c.selected[c.keyAt(i)]; !ok {
			return false
		}
	}

	return true
}

func (c *Controller[R]) selectedRecords() []R {

	records := make([]R, 0, len(c.selected))
	for i, record := range c.data {
		if _, ok := c.selected[c.keyAt(i)]; ok {
			records = append(records, record)
		}
	}

	return records
}
