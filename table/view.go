package table

import "github.com/supakorn-kn/peponi-admin/models"

const NoResultsMessage = "No results."

type HeaderCell struct {
	ColumnID  string
	Label     string
	Sortable  bool
	Direction models.SortDirection
}

type Cell struct {
	ColumnID string
	Kind     Kind
	Value    any
	Text     string
}

type Row[R any] struct {
	Index    int
	Key      string
	Selected bool
	Record   R
	Cells    []Cell
}

// EmptyRow is the single row shown instead of records when the page is empty.
type EmptyRow struct {
	Message string
	ColSpan int
}

type PageButton struct {
	Number   int
	Current  bool
	Disabled bool
}

type NavButton struct {
	Page     int
	Disabled bool
}

type Pagination struct {
	Page       int
	TotalPages int
	Buttons    []PageButton
	Previous   NavButton
	Next       NavButton
}

type BulkDelete struct {
	Enabled    bool
	Disabled   bool
	Count      int
	Confirming bool
}

// View is everything a template needs to draw the table.
type View[R any] struct {
	Headers     []HeaderCell
	Rows        []Row[R]
	Empty       *EmptyRow
	Selectable  bool
	AllSelected bool
	SearchTerm  string
	Pagination  Pagination
	BulkDelete  BulkDelete
}

// RowCount is the number of table rows drawn, the empty row included.
func (v View[R]) RowCount() int {

	if v.Empty != nil {
		return 1
	}

	return len(v.Rows)
}

// Render builds the View of the current state.
func (c *Controller[R]) Render() View[R] {

	c.mu.Lock()
	defer c.mu.Unlock()

	columns := make([]Column[R], 0, len(c.config.Columns))
	for _, column := range c.config.Columns {
		if !column.Hidden {
			columns = append(columns, column)
		}
	}

	view := View[R]{
		Headers:     make([]HeaderCell, 0, len(columns)),
		Rows:        make([]Row[R], 0, len(c.order)),
		Selectable:  c.config.EnableBulkDelete,
		AllSelected: c.allSelected(),
		SearchTerm:  c.searchTerm,
		Pagination:  c.pagination(),
		BulkDelete: BulkDelete{
			Enabled:    c.config.EnableBulkDelete,
			Disabled:   len(c.selected) == 0,
			Count:      len(c.selected),
			Confirming: c.confirming,
		},
	}

	for _, column := range columns {

		header := HeaderCell{
			ColumnID: column.ID,
			Label:    column.Header,
			Sortable: column.Sortable && !column.presentational(),
		}

		if c.sort.columnID == column.ID {
			header.Direction = c.sort.direction
		}

		view.Headers = append(view.Headers, header)
	}

	for position, index := range c.order {

		record := c.data[index]
		key := c.keyAt(index)
		_, selected := c.selected[key]

		row := Row[R]{
			Index:    position,
			Key:      key,
			Selected: selected,
			Record:   record,
			Cells:    make([]Cell, 0, len(columns)),
		}

		for _, column := range columns {

			cell := Cell{ColumnID: column.ID, Kind: column.Kind}
			if !column.presentational() {
				cell.Value = column.Accessor(record)
				cell.Text = Format(column.Kind, cell.Value)
			}

			row.Cells = append(row.Cells, cell)
		}

		view.Rows = append(view.Rows, row)
	}

	if len(view.Rows) == 0 {

		colSpan := len(columns)
		if view.Selectable {
			colSpan++
		}

		view.Empty = &EmptyRow{Message: NoResultsMessage, ColSpan: max(colSpan, 1)}
	}

	return view
}

func (c *Controller[R]) pagination() Pagination {

	pagination := Pagination{
		Page:       c.page,
		TotalPages: c.totalPages,
		Previous:   NavButton{Page: c.page - 1, Disabled: c.page <= 1},
		Next:       NavButton{Page: c.page + 1, Disabled: c.page >= c.totalPages},
	}

	if c.totalPages == 0 {
		pagination.Buttons = []PageButton{{Number: 1, Current: true, Disabled: true}}
		return pagination
	}

	pagination.Buttons = make([]PageButton, 0, c.totalPages)
	for number := 1; number <= c.totalPages; number++ {
		pagination.Buttons = append(pagination.Buttons, PageButton{Number: number, Current: number == c.page})
	}

	return pagination
}
