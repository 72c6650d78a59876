package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/supakorn-kn/peponi-admin/apis"
	"github.com/supakorn-kn/peponi-admin/backend"
	"github.com/supakorn-kn/peponi-admin/catalog"
	"github.com/supakorn-kn/peponi-admin/env"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/idmask"
	"github.com/supakorn-kn/peponi-admin/middlewares"
	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/supakorn-kn/peponi-admin/session"
)

type memoryModel[T objects.Record] struct {
	mu       sync.Mutex
	items    []T
	match    func(item T, term string) bool
	lastTerm string
}

func (m *memoryModel[T]) Search(_ context.Context, q models.ListQuery) (models.PaginationData[T], error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastTerm = q.Term()

	matched := []T{}
	for _, item := range m.items {
		if q.Term() == "" || m.match(item, q.Term()) {
			matched = append(matched, item)
		}
	}

	start := min(q.Offset(), len(matched))
	end := min(start+q.PageSize, len(matched))

	return models.PaginationData[T]{
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: models.TotalPages(len(matched), q.PageSize),
		Count:      len(matched),
		Data:       slices.Clone(matched[start:end]),
	}, nil
}

func (m *memoryModel[T]) GetByID(_ context.Context, itemID int64) (T, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range m.items {
		if item.GetID() == itemID {
			return item, nil
		}
	}

	var empty T
	return empty, errors.ObjectIDNotFoundError.New(itemID)
}

func (m *memoryModel[T]) Insert(_ context.Context, item T) (T, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	if setter, ok := any(item).(objects.IDSetter[T]); ok {
		item = setter.WithID(int64(len(m.items) + 100))
	}

	m.items = append(m.items, item)
	return item, nil
}

func (m *memoryModel[T]) Update(_ context.Context, item T) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].GetID() == item.GetID() {
			m.items[i] = item
			return nil
		}
	}

	return errors.ObjectIDNotFoundError.New(item.GetID())
}

func (m *memoryModel[T]) Delete(_ context.Context, itemID int64) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	index := slices.IndexFunc(m.items, func(item T) bool { return item.GetID() == itemID })
	if index < 0 {
		return errors.ObjectIDNotFoundError.New(itemID)
	}

	m.items = slices.Delete(m.items, index, index+1)
	return nil
}

func (m *memoryModel[T]) SetStatus(context.Context, int64, int) error {
	return nil
}

func (m *memoryModel[T]) snapshot() []T {

	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.items)
}

func (m *memoryModel[T]) term() string {

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastTerm
}

type fakeAuthenticator struct{}

func (fakeAuthenticator) Login(_ context.Context, username, password string) (backend.LoginResult, error) {

	if password != "secret" {
		return backend.LoginResult{}, errors.UnauthorizedError.New()
	}

	return backend.LoginResult{Token: "token", Admin: backend.Admin{AdminID: 1, UserName: username}}, nil
}

type fakeStats struct {
	stats objects.Stats
	err   error
}

func (f *fakeStats) Stats(context.Context) (objects.Stats, error) {
	return f.stats, f.err
}

type fakeAccounts struct {
	mu      sync.Mutex
	account backend.Admin
	current string
	changes []objects.PasswordChange
}

func (f *fakeAccounts) Profile(_ context.Context, adminID int64) (backend.Admin, error) {

	if adminID != f.account.AdminID {
		return backend.Admin{}, errors.ObjectIDNotFoundError.New(adminID)
	}

	return f.account, nil
}

func (f *fakeAccounts) ChangePassword(_ context.Context, change objects.PasswordChange) error {

	f.mu.Lock()
	defer f.mu.Unlock()

	if change.OldPassword != f.current {
		return errors.ValidationFailedError.New("current password is incorrect")
	}

	f.current = change.NewPassword
	f.changes = append(f.changes, change)
	return nil
}

type fakeFeatured struct {
	mu         sync.Mutex
	selected   map[int][]objects.FeaturedProduct
	candidates map[int][]objects.FeaturedProduct
	nextID     int64
}

func (f *fakeFeatured) FeaturedProducts(_ context.Context, group int) ([]objects.FeaturedProduct, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.selected[group]), nil
}

func (f *fakeFeatured) FeatureCandidates(_ context.Context, group int) ([]objects.FeaturedProduct, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.candidates[group]), nil
}

func (f *fakeFeatured) AddFeatured(_ context.Context, group int, productID int64) error {

	f.mu.Lock()
	defer f.mu.Unlock()

	index := slices.IndexFunc(f.candidates[group], func(product objects.FeaturedProduct) bool { return product.ProductID == productID })
	if index < 0 {
		return errors.ObjectIDNotFoundError.New(productID)
	}

	f.nextID++

	product := f.candidates[group][index]
	product.FeaturedID = f.nextID
	product.FeatureName = group

	f.selected[group] = append(f.selected[group], product)
	return nil
}

func (f *fakeFeatured) RemoveFeatured(_ context.Context, featuredID int64) error {

	f.mu.Lock()
	defer f.mu.Unlock()

	for group, products := range f.selected {

		index := slices.IndexFunc(products, func(product objects.FeaturedProduct) bool { return product.FeaturedID == featuredID })
		if index >= 0 {
			f.selected[group] = slices.Delete(products, index, index+1)
			return nil
		}
	}

	return errors.ObjectIDNotFoundError.New(featuredID)
}

func (f *fakeFeatured) snapshot(group int) []objects.FeaturedProduct {

	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.selected[group])
}

type DashboardTestSuite struct {
	suite.Suite
	faqs       *memoryModel[objects.FAQ]
	categories *memoryModel[objects.Category]
	stats      *fakeStats
	accounts   *fakeAccounts
	featured   *fakeFeatured
	g          *gin.Engine
	cookies    map[string]*http.Cookie
}

func (s *DashboardTestSuite) SetupTest() {

	gin.SetMode(gin.TestMode)

	s.faqs = &memoryModel[objects.FAQ]{
		match: func(item objects.FAQ, term string) bool {
			return strings.Contains(strings.ToLower(item.Question), strings.ToLower(term))
		},
	}

	for i := 1; i <= 3; i++ {
		s.faqs.items = append(s.faqs.items, objects.FAQ{FAQID: int64(i), Question: gofakeit.Question(), Answer: fmt.Sprintf("Answer %d %s", i, gofakeit.Word())})
	}

	s.categories = &memoryModel[objects.Category]{
		items: []objects.Category{{CategoryID: 1, CategoryName: "Summer Shoes"}, {CategoryID: 2, CategoryName: "Winter Boots"}},
		match: func(item objects.Category, term string) bool {
			return strings.Contains(strings.ToLower(item.CategoryName), strings.ToLower(term))
		},
	}

	sessions := session.NewManager(16, time.Hour, false, nil)
	masker := idmask.New(idmask.NewMemoryStore(64, time.Hour), time.Hour, nil)
	auth := apis.NewAuthAPI(fakeAuthenticator{}, nil, env.AuthConfig{CookieName: "AdminToken"}, sessions.Destroy)

	d := New(sessions, masker, auth, Options{PageSize: 10, Debounce: 10 * time.Millisecond})

	templates, err := Templates()
	s.Require().NoError(err)

	s.g = gin.New()
	s.g.SetHTMLTemplate(templates)

	d.RegisterLogin(s.g)

	s.stats = &fakeStats{stats: objects.Stats{Products: 12, Users: 7, Blogs: 3, Revenue: decimal.RequireFromString("1234.5")}}
	s.accounts = &fakeAccounts{account: backend.Admin{AdminID: 1, UserName: "root", Email: gofakeit.Email()}, current: "old-secret"}

	s.featured = &fakeFeatured{
		selected: map[int][]objects.FeaturedProduct{
			2: {{FeaturedID: 1, FeatureName: 2, ProductID: 10, ProductName: "Blue Portrait"}},
		},
		candidates: map[int][]objects.FeaturedProduct{
			2: {{ProductID: 10, ProductName: "Blue Portrait"}, {ProductID: 11, ProductName: "Red Portrait"}},
		},
		nextID: 1,
	}

	signedIn := func(c *gin.Context) {
		middlewares.SetAdmin(c, s.accounts.account)
	}

	group := s.g.Group(BasePath, signedIn, sessions.Middleware())
	d.Home(group, s.stats)
	d.Account(group, s.accounts)
	d.Featured(group, s.featured)
	RegisterCategoryCheck(group, s.categories)
	Mount(d, group, catalog.FAQs, s.faqs)
	Mount(d, group, catalog.Categories, s.categories)

	s.cookies = map[string]*http.Cookie{}
}

func (s *DashboardTestSuite) do(method, target string, form url.Values) *httptest.ResponseRecorder {

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	for _, cookie := range s.cookies {
		req.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	s.g.ServeHTTP(recorder, req)

	for _, cookie := range recorder.Result().Cookies() {
		s.cookies[cookie.Name] = cookie
	}

	return recorder
}

func (s *DashboardTestSuite) TestList() {

	recorder := s.do(http.MethodGet, "/dashboard/faqs", nil)
	s.Require().Equal(http.StatusOK, recorder.Code)

	body := recorder.Body.String()
	for _, faq := range s.faqs.snapshot() {
		s.Require().Contains(body, faq.Answer)
	}

	s.Require().Contains(s.cookies, session.CookieName)

	s.Run("Query actions redirect back to the list", func() {

		recorder := s.do(http.MethodGet, "/dashboard/faqs?sort=question", nil)
		s.Require().Equal(http.StatusSeeOther, recorder.Code)
		s.Require().Equal("/dashboard/faqs", recorder.Header().Get("Location"))

		recorder = s.do(http.MethodGet, "/dashboard/faqs", nil)
		s.Require().Contains(recorder.Body.String(), "▲")
	})

	s.Run("Out of range page is ignored", func() {

		s.Require().Equal(http.StatusSeeOther, s.do(http.MethodGet, "/dashboard/faqs?page=9", nil).Code)
		s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/dashboard/faqs", nil).Code)
	})
}

func (s *DashboardTestSuite) TestSearch() {

	s.do(http.MethodGet, "/dashboard/faqs", nil)

	recorder := s.do(http.MethodPost, "/dashboard/faqs/search", url.Values{"search": {"  zzz-unknown  "}})
	s.Require().Equal(http.StatusSeeOther, recorder.Code)
	s.Require().Equal("zzz-unknown", s.faqs.term())

	recorder = s.do(http.MethodGet, "/dashboard/faqs", nil)
	s.Require().Contains(recorder.Body.String(), "No results.")
}

func (s *DashboardTestSuite) TestBulkDelete() {

	s.do(http.MethodGet, "/dashboard/faqs", nil)

	s.Run("Nothing selected", func() {

		s.do(http.MethodPost, "/dashboard/faqs/delete", url.Values{})

		body := s.do(http.MethodGet, "/dashboard/faqs", nil).Body.String()
		s.Require().Contains(body, "Select the records to delete first")
		s.Require().NotContains(body, "alertdialog")
	})

	s.Run("Declined", func() {

		s.do(http.MethodPost, "/dashboard/faqs/select", url.Values{"key": {"1"}})
		s.do(http.MethodPost, "/dashboard/faqs/delete", url.Values{})

		body := s.do(http.MethodGet, "/dashboard/faqs", nil).Body.String()
		s.Require().Contains(body, "Are you sure you want to delete this FAQ?")

		s.do(http.MethodPost, "/dashboard/faqs/delete/confirm", url.Values{"answer": {"no"}})
		s.Require().Len(s.faqs.snapshot(), 3)

		body = s.do(http.MethodGet, "/dashboard/faqs", nil).Body.String()
		s.Require().Contains(body, "Delete selected (1)")
	})

	s.Run("Accepted", func() {

		s.do(http.MethodPost, "/dashboard/faqs/select", url.Values{"all": {"1"}})
		s.do(http.MethodPost, "/dashboard/faqs/delete", url.Values{})

		body := s.do(http.MethodGet, "/dashboard/faqs", nil).Body.String()
		s.Require().Contains(body, "Are you sure you want to delete 3 FAQ records?")

		recorder := s.do(http.MethodPost, "/dashboard/faqs/delete/confirm", url.Values{"answer": {"yes"}})
		s.Require().Equal(http.StatusSeeOther, recorder.Code)
		s.Require().Empty(s.faqs.snapshot())

		body = s.do(http.MethodGet, "/dashboard/faqs", nil).Body.String()
		s.Require().Contains(body, "Deleted 3 faqs records")
		s.Require().Contains(body, "No results.")
		s.Require().Contains(body, "Delete selected (0)")
	})
}

func (s *DashboardTestSuite) TestEdit() {

	s.do(http.MethodGet, "/dashboard/faqs", nil)
	first := s.faqs.snapshot()[0]

	s.Run("Stale row key is refused", func() {

		recorder := s.do(http.MethodPost, "/dashboard/faqs/rows/0/edit", url.Values{"key": {"999"}})
		s.Require().Equal("/dashboard/faqs", recorder.Header().Get("Location"))
		s.Require().Contains(s.do(http.MethodGet, "/dashboard/faqs", nil).Body.String(), "The list has changed")
	})

	recorder := s.do(http.MethodPost, "/dashboard/faqs/rows/0/edit", url.Values{"key": {"1"}})
	s.Require().Equal(http.StatusSeeOther, recorder.Code)

	editPath := recorder.Header().Get("Location")
	s.Require().True(strings.HasPrefix(editPath, "/dashboard/faqs/"))
	s.Require().True(strings.HasSuffix(editPath, "/edit"))
	s.Require().NotContains(editPath, "/1/")

	recorder = s.do(http.MethodGet, editPath, nil)
	s.Require().Equal(http.StatusOK, recorder.Code)
	s.Require().Contains(recorder.Body.String(), first.Answer)

	s.Run("Invalid input keeps the form", func() {

		recorder := s.do(http.MethodPost, editPath, url.Values{"question": {"Hi?"}, "answer": {"Short"}})
		s.Require().Equal(http.StatusBadRequest, recorder.Code)
		s.Require().Contains(recorder.Body.String(), "Must be at least 5 characters")
		s.Require().Equal(first, s.faqs.snapshot()[0])
	})

	s.Run("Valid input is saved", func() {

		recorder := s.do(http.MethodPost, editPath, url.Values{"question": {"How do refunds work?"}, "answer": {"Within 14 days."}, "id": {"42"}})
		s.Require().Equal(http.StatusSeeOther, recorder.Code)

		saved := s.faqs.snapshot()[0]
		s.Require().Equal(first.FAQID, saved.FAQID)
		s.Require().Equal("How do refunds work?", saved.Question)
	})

	s.Run("Detail page", func() {

		token := strings.TrimSuffix(strings.TrimPrefix(editPath, "/dashboard/faqs/"), "/edit")

		recorder := s.do(http.MethodGet, "/dashboard/faqs/"+token, nil)
		s.Require().Equal(http.StatusOK, recorder.Code)
		s.Require().Contains(recorder.Body.String(), "How do refunds work?")
	})

	s.Run("Unknown token", func() {
		s.Require().Equal(http.StatusNotFound, s.do(http.MethodGet, "/dashboard/faqs/2HUvdbJ1P4JcXmjQxcSRG7sxxrA", nil).Code)
	})
}

func (s *DashboardTestSuite) TestCreate() {

	recorder := s.do(http.MethodPost, "/dashboard/faqs/new", url.Values{"question": {"Do you ship abroad?"}, "answer": {"Yes."}})
	s.Require().Equal(http.StatusSeeOther, recorder.Code)

	items := s.faqs.snapshot()
	s.Require().Len(items, 4)
	s.Require().Equal("Do you ship abroad?", items[3].Question)
	s.Require().Contains(s.do(http.MethodGet, "/dashboard/faqs", nil).Body.String(), "Saved faqs")
}

func (s *DashboardTestSuite) TestCategoryCheck() {

	check := func(name string) bool {

		recorder := s.do(http.MethodGet, "/dashboard/categories/check?name="+url.QueryEscape(name), nil)
		s.Require().Equal(http.StatusOK, recorder.Code)

		var response struct {
			Result struct {
				Exists bool `json:"exists"`
			} `json:"result"`
		}

		s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
		return response.Result.Exists
	}

	s.Require().True(check(" summer shoes "))
	s.Require().False(check("Summer"))
	s.Require().False(check(""))
}

func (s *DashboardTestSuite) TestLogin() {

	recorder := s.do(http.MethodGet, "/login?next=/dashboard/faqs", nil)
	s.Require().Equal(http.StatusOK, recorder.Code)
	s.Require().Contains(recorder.Body.String(), `value="/dashboard/faqs"`)

	recorder = s.do(http.MethodPost, "/login", url.Values{"username": {"root"}, "password": {"wrong"}, "next": {"/dashboard/faqs"}})
	s.Require().Equal(http.StatusUnauthorized, recorder.Code)

	recorder = s.do(http.MethodPost, "/login", url.Values{"username": {"root"}, "password": {"secret"}, "next": {"https://evil.example/"}})
	s.Require().Equal(http.StatusSeeOther, recorder.Code)
	s.Require().Equal(BasePath, recorder.Header().Get("Location"))
	s.Require().Equal("token", s.cookies["AdminToken"].Value)
}

func (s *DashboardTestSuite) TestHome() {

	s.Run("Store totals are shown", func() {

		recorder := s.do(http.MethodGet, "/dashboard", nil)
		s.Require().Equal(http.StatusOK, recorder.Code)

		body := recorder.Body.String()
		s.Require().Contains(body, "Welcome, root")
		s.Require().Contains(body, "<strong>12</strong>")
		s.Require().Contains(body, "<strong>1234.50</strong>")
		s.Require().Contains(body, `href="/dashboard/products/new"`)
	})

	s.Run("Unavailable totals keep the page", func() {

		s.stats.err = errors.BackendRequestFailedError.New(http.MethodGet, "dash", "backend is down")

		recorder := s.do(http.MethodGet, "/dashboard", nil)
		s.Require().Equal(http.StatusOK, recorder.Code)

		body := recorder.Body.String()
		s.Require().Contains(body, "Store totals are unavailable")
		s.Require().NotContains(body, "<strong>12</strong>")
		s.Require().Contains(body, `href="/dashboard/profile"`)
	})
}

func (s *DashboardTestSuite) TestChangePassword() {

	s.Run("Confirmation mismatch keeps the form", func() {

		recorder := s.do(http.MethodPost, "/dashboard/change-password", url.Values{
			"oldPassword":     {"old-secret"},
			"newPassword":     {"new-secret"},
			"confirmPassword": {"new-secrets"},
		})
		s.Require().Equal(http.StatusBadRequest, recorder.Code)
		s.Require().Contains(recorder.Body.String(), "Does not match")
		s.Require().Empty(s.accounts.changes)
	})

	s.Run("Wrong current password is reported", func() {

		recorder := s.do(http.MethodPost, "/dashboard/change-password", url.Values{
			"oldPassword":     {"guess"},
			"newPassword":     {"new-secret"},
			"confirmPassword": {"new-secret"},
		})
		s.Require().Equal(http.StatusBadRequest, recorder.Code)
		s.Require().Contains(recorder.Body.String(), "current password is incorrect")
		s.Require().Empty(s.accounts.changes)
	})

	s.Run("Changed password returns to the profile", func() {

		recorder := s.do(http.MethodPost, "/dashboard/change-password", url.Values{
			"oldPassword":     {"old-secret"},
			"newPassword":     {"new-secret"},
			"confirmPassword": {"new-secret"},
			"id":              {"99"},
		})
		s.Require().Equal(http.StatusSeeOther, recorder.Code)
		s.Require().Equal("/dashboard/profile?changed=1", recorder.Header().Get("Location"))

		s.Require().Len(s.accounts.changes, 1)
		s.Require().Equal(int64(1), s.accounts.changes[0].AdminID)
		s.Require().Equal("new-secret", s.accounts.current)

		body := s.do(http.MethodGet, "/dashboard/profile?changed=1", nil).Body.String()
		s.Require().Contains(body, "Password changed")
		s.Require().Contains(body, s.accounts.account.Email)
	})
}

func (s *DashboardTestSuite) TestFeatured() {

	s.Run("Featured products are not offered again", func() {

		recorder := s.do(http.MethodGet, "/dashboard/featured?group=2", nil)
		s.Require().Equal(http.StatusOK, recorder.Code)

		body := recorder.Body.String()
		s.Require().Contains(body, "Blue Portrait")
		s.Require().Contains(body, `<option value="11">Red Portrait</option>`)
		s.Require().NotContains(body, `<option value="10">`)
	})

	s.Run("Unknown group", func() {
		s.Require().Equal(http.StatusBadRequest, s.do(http.MethodGet, "/dashboard/featured?group=9", nil).Code)
	})

	s.Run("Added product", func() {

		recorder := s.do(http.MethodPost, "/dashboard/featured/add", url.Values{"group": {"2"}, "product": {"11"}})
		s.Require().Equal(http.StatusSeeOther, recorder.Code)
		s.Require().Equal("/dashboard/featured?done=added&group=2", recorder.Header().Get("Location"))
		s.Require().Len(s.featured.snapshot(2), 2)

		body := s.do(http.MethodGet, recorder.Header().Get("Location"), nil).Body.String()
		s.Require().Contains(body, "Added to Portraits")
		s.Require().Contains(body, "Every available product is already featured.")
	})

	s.Run("Removal asks first", func() {

		body := s.do(http.MethodGet, "/dashboard/featured?group=2&remove=1", nil).Body.String()
		s.Require().Contains(body, "Are you sure you want to delete this featured product?")

		recorder := s.do(http.MethodPost, "/dashboard/featured/remove", url.Values{"group": {"2"}, "featured": {"1"}, "answer": {"no"}})
		s.Require().Equal("/dashboard/featured?group=2", recorder.Header().Get("Location"))
		s.Require().Len(s.featured.snapshot(2), 2)

		recorder = s.do(http.MethodPost, "/dashboard/featured/remove", url.Values{"group": {"2"}, "featured": {"1"}, "answer": {"yes"}})
		s.Require().Equal("/dashboard/featured?done=removed&group=2", recorder.Header().Get("Location"))

		products := s.featured.snapshot(2)
		s.Require().Len(products, 1)
		s.Require().Equal(int64(11), products[0].ProductID)
	})

	s.Run("Stale removal", func() {

		body := s.do(http.MethodGet, "/dashboard/featured?group=2&remove=1", nil).Body.String()
		s.Require().Contains(body, "The product is no longer featured in Portraits")
		s.Require().NotContains(body, "alertdialog")
	})
}

func TestDashboard(t *testing.T) {
	suite.Run(t, new(DashboardTestSuite))
}
