package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/peponi-admin/apis"
	"github.com/supakorn-kn/peponi-admin/catalog"
	"github.com/supakorn-kn/peponi-admin/confirm"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/forms"
	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/supakorn-kn/peponi-admin/screen"
	"github.com/supakorn-kn/peponi-admin/session"
	"github.com/supakorn-kn/peponi-admin/table"
)

var pageSizes = []int{10, 20, 50, 100}

type entityPages[R objects.Record] struct {
	d            *Dashboard
	entity       catalog.Entity[R]
	model        models.Model[R]
	capabilities models.Capabilities
}

// Mount serves the list, form and detail pages of entity under group.
func Mount[R objects.Record](d *Dashboard, group *gin.RouterGroup, entity catalog.Entity[R], model models.Model[R]) {

	p := &entityPages[R]{
		d:            d,
		entity:       entity,
		model:        model,
		capabilities: models.CapabilitiesOf(model),
	}

	g := group.Group(entity.Name)

	g.GET("", p.list)
	g.POST("search", p.search)
	g.POST("select", p.selectRows)
	g.POST("delete", p.beginDelete)
	g.POST("delete/confirm", p.resolveDelete)
	g.POST("rows/:row/:action", p.rowAction)

	if p.editable() {

		g.GET("new", p.newForm)
		g.POST("new", p.create)
		g.GET(":token/edit", p.editForm)
		g.POST(":token/edit", p.update)
	}

	g.GET(":token", p.detail)
}

func (p *entityPages[R]) editable() bool {
	return p.entity.Editable() && p.capabilities.Writable
}

func (p *entityPages[R]) newScreen() *screen.Screen[R] {

	config := table.Config[R]{
		Columns:          p.entity.Columns,
		OnView:           p.open("view"),
		EnableBulkDelete: p.entity.BulkDelete && p.capabilities.Writable,
	}

	if p.editable() {
		config.OnEdit = p.open("edit")
	}

	return screen.New(p.model, config, screen.Options{
		Entity:   p.entity.Name,
		Noun:     p.entity.Noun,
		PageSize: p.d.opts.PageSize,
		Debounce: p.d.opts.Debounce,
		Filters:  p.entity.Filters(),
		Metrics:  p.d.opts.Metrics,
	})
}

// open returns the row callback sending the browser to the masked detail or edit page of a record.
func (p *entityPages[R]) open(page string) func(ctx context.Context, record R) error {

	return func(ctx context.Context, record R) error {

		token, err := p.d.masker.Mask(ctx, record.GetID())
		if err != nil {
			return err
		}

		if page == "view" {
			navigate(ctx, entityPath(p.entity.Name, token))
		} else {
			navigate(ctx, entityPath(p.entity.Name, token, page))
		}

		return nil
	}
}

// screen returns the list screen of the session, mounting and loading it on first use.
func (p *entityPages[R]) screen(c *gin.Context) (*screen.Screen[R], error) {

	sess, ok := session.From(c)
	if !ok {
		return nil, errors.UnauthorizedError.New()
	}

	s, created := session.Acquire(sess, p.entity.Name, p.newScreen)
	if created {

		//NOTE: A failed first load is reported through the screen notices
		if err := s.Load(c.Request.Context()); err != nil {
			slog.Warn("initial list load failed", "entity", p.entity.Name, "error", err)
		}
	}

	return s, nil
}

func (p *entityPages[R]) backToList(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, entityPath(p.entity.Name))
}

type listPage struct {
	layout
	Meta         catalog.Meta
	Table        any
	State        screen.PaginationState
	Tab          string
	Prompt       *confirm.Prompt
	Capabilities models.Capabilities
	Editable     bool
	PageSizes    []int
}

// list renders the current page. Navigation links arrive as query parameters; they are applied and the browser
// is redirected back to the bare list so a reload never repeats them.
func (p *entityPages[R]) list(c *gin.Context) {

	s, err := p.screen(c)
	if err != nil {
		p.d.renderError(c, p.entity.Name, err)
		return
	}

	if applied, err := p.applyQuery(c, s); applied {

		if err != nil {
			s.Notify(screen.ErrorNotice(errorMessage(err)))
		}

		p.backToList(c)
		return
	}

	view := s.Table().Render()
	state := s.State()

	page := listPage{
		layout:       p.d.layout(c, p.entity.Title, p.entity.Name),
		Meta:         p.entity.Meta,
		Table:        view,
		State:        state.Pagination,
		Capabilities: p.capabilities,
		Editable:     p.editable(),
		PageSizes:    pageSizes,
	}

	if p.entity.Tabs != nil {
		page.Tab = state.Filters[p.entity.Tabs.Key]
	}

	if view.BulkDelete.Confirming {
		prompt := confirm.DeletePrompt(p.entity.Noun, view.BulkDelete.Count)
		page.Prompt = &prompt
	}

	page.Notices = s.Notices()
	c.HTML(http.StatusOK, "list.html", page)
}

func (p *entityPages[R]) applyQuery(c *gin.Context, s *screen.Screen[R]) (bool, error) {

	ctx := c.Request.Context()

	if raw, ok := c.GetQuery("page"); ok {

		page, err := strconv.Atoi(raw)
		if err != nil {
			return true, errors.CurrentPageInvalidError.New()
		}

		return true, s.Table().GoToPage(ctx, page)
	}

	if raw, ok := c.GetQuery("pageSize"); ok {

		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return true, errors.PageSizeInvalidError.New(models.MaxPageSize)
		}

		return true, s.SetPageSize(ctx, pageSize)
	}

	if columnID, ok := c.GetQuery("sort"); ok {
		return true, s.ToggleSort(ctx, columnID)
	}

	if value, ok := c.GetQuery("tab"); ok && p.entity.Tabs != nil {
		return true, s.SetFilter(ctx, p.entity.Tabs.Key, value)
	}

	return false, nil
}

// search stores the term and answers once the debounced fetch it belongs to has landed.
func (p *entityPages[R]) search(c *gin.Context) {

	s, err := p.screen(c)
	if err != nil {
		p.d.renderError(c, p.entity.Name, err)
		return
	}

	done := s.SearchFrom(c.Request.Context(), c.PostForm("search"))

	select {
	case <-done:
	case <-c.Request.Context().Done():
		return
	case <-time.After(searchWait):
		s.Notify(screen.InfoNotice("Search is still running"))
	}

	p.backToList(c)
}

func (p *entityPages[R]) selectRows(c *gin.Context) {

	s, err := p.screen(c)
	if err != nil {
		p.d.renderError(c, p.entity.Name, err)
		return
	}

	if c.PostForm("all") != "" {
		s.Table().ToggleAll()
	} else {
		s.Table().ToggleRow(c.PostForm("key"))
	}

	p.backToList(c)
}

func (p *entityPages[R]) beginDelete(c *gin.Context) {

	s, err := p.screen(c)
	if err != nil {
		p.d.renderError(c, p.entity.Name, err)
		return
	}

	if _, ok := s.Table().BeginDeleteSelected(); !ok {
		s.Notify(screen.InfoNotice("Select the records to delete first"))
	}

	p.backToList(c)
}

func (p *entityPages[R]) resolveDelete(c *gin.Context) {

	s, err := p.screen(c)
	if err != nil {
		p.d.renderError(c, p.entity.Name, err)
		return
	}

	accepted := c.PostForm("answer") == "yes"
	if err := s.Table().ResolveDeleteSelected(c.Request.Context(), accepted); err != nil {
		slog.Warn("bulk delete failed", "entity", p.entity.Name, "error", err)
	}

	p.backToList(c)
}

// rowAction runs a row button. The key posted with it guards against the page having changed since it was drawn.
func (p *entityPages[R]) rowAction(c *gin.Context) {

	s, err := p.screen(c)
	if err != nil {
		p.d.renderError(c, p.entity.Name, err)
		return
	}

	row, err := strconv.Atoi(c.Param("row"))
	record, ok := s.Table().Record(row)
	if err != nil || !ok || (c.PostForm("key") != "" && objects.Key(record) != c.PostForm("key")) {

		s.Notify(screen.ErrorNotice("The list has changed, please try again"))
		p.backToList(c)
		return
	}

	ctx, nav := withNavigation(c.Request.Context())

	switch c.Param("action") {

	case "view":
		err = s.Table().View(ctx, row)

	case "edit":
		err = s.Table().Edit(ctx, row)

	case "delete":
		err = s.Table().DeleteOne(ctx, row)

	case "status":
		err = s.ToggleStatus(ctx, record)

	default:
		c.Status(http.StatusNotFound)
		return
	}

	if nav.target != "" {
		c.Redirect(http.StatusSeeOther, nav.target)
		return
	}

	if err != nil {

		slog.Warn("row action failed", "entity", p.entity.Name, "action", c.Param("action"), "error", err)

		//NOTE: Delete and status failures are already reported by the screen
		if action := c.Param("action"); action == "view" || action == "edit" {
			s.Notify(screen.ErrorNotice(errorMessage(err)))
		}
	}

	p.backToList(c)
}

type formPage struct {
	layout
	Meta    catalog.Meta
	Action  string
	Editing bool
	Values  map[string]string
	Errors  forms.FieldErrors
	Error   string
}

func (p *entityPages[R]) renderForm(c *gin.Context, status int, page formPage) {

	title := "New " + p.entity.Noun
	if page.Editing {
		title = "Edit " + p.entity.Noun
	}

	page.layout = p.d.layout(c, title, p.entity.Name)
	page.Meta = p.entity.Meta
	c.HTML(status, "form.html", page)
}

func (p *entityPages[R]) newForm(c *gin.Context) {

	var empty R
	p.renderForm(c, http.StatusOK, formPage{
		Action: entityPath(p.entity.Name, "new"),
		Values: recordValues(empty),
	})
}

func (p *entityPages[R]) create(c *gin.Context) {

	var empty R
	p.save(c, empty, formPage{Action: entityPath(p.entity.Name, "new")})
}

// loadMasked resolves the masked identifier of the path into the stored record.
func (p *entityPages[R]) loadMasked(c *gin.Context) (R, string, error) {

	var record R
	token := c.Param("token")

	itemID, err := p.d.masker.Unmask(c.Request.Context(), token)
	if err != nil {
		return record, token, err
	}

	s, err := p.screen(c)
	if err != nil {
		return record, token, err
	}

	record, err = s.Get(c.Request.Context(), itemID)
	return record, token, err
}

func (p *entityPages[R]) editForm(c *gin.Context) {

	record, token, err := p.loadMasked(c)
	if err != nil {
		p.d.renderError(c, p.entity.Name, err)
		return
	}

	p.renderForm(c, http.StatusOK, formPage{
		Action:  entityPath(p.entity.Name, token, "edit"),
		Editing: true,
		Values:  recordValues(record),
	})
}

func (p *entityPages[R]) update(c *gin.Context) {

	record, token, err := p.loadMasked(c)
	if err != nil {
		p.d.renderError(c, p.entity.Name, err)
		return
	}

	p.save(c, record, formPage{Action: entityPath(p.entity.Name, token, "edit"), Editing: true})
}

// save decodes the submitted form over base and stores it. Invalid input redraws the form with its messages.
func (p *entityPages[R]) save(c *gin.Context, base R, page formPage) {

	if err := c.Request.ParseForm(); err != nil {
		p.d.renderError(c, p.entity.Name, errors.ValidationFailedError.New(err.Error()))
		return
	}

	page.Values = submittedValues(c.Request.PostForm)

	record, fieldErrors, err := forms.DecodeInto(c.Request.PostForm, base)
	if err != nil {
		page.Error = errorMessage(err)
		p.renderForm(c, http.StatusBadRequest, page)
		return
	}

	if len(fieldErrors) > 0 {
		page.Errors = fieldErrors
		p.renderForm(c, http.StatusBadRequest, page)
		return
	}

	//NOTE: The stored identifier wins over anything the form tried to change
	if setter, ok := any(record).(objects.IDSetter[R]); ok {
		record = setter.WithID(base.GetID())
	}

	s, err := p.screen(c)
	if err != nil {
		p.d.renderError(c, p.entity.Name, err)
		return
	}

	if _, err := s.Save(c.Request.Context(), record); err != nil {

		// the form shows the failure itself
		s.Notices()
		page.Error = errorMessage(err)
		p.renderForm(c, apis.StatusCode(err), page)
		return
	}

	p.backToList(c)
}

type detailPage struct {
	layout
	Meta   catalog.Meta
	Fields []Detail
	Edit   string
}

func (p *entityPages[R]) detail(c *gin.Context) {

	record, token, err := p.loadMasked(c)
	if err != nil {
		p.d.renderError(c, p.entity.Name, err)
		return
	}

	page := detailPage{
		layout: p.d.layout(c, p.entity.Title, p.entity.Name),
		Meta:   p.entity.Meta,
		Fields: recordDetails(record),
	}

	if p.editable() {
		page.Edit = entityPath(p.entity.Name, token, "edit")
	}

	c.HTML(http.StatusOK, "view.html", page)
}
