package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/supakorn-kn/peponi-admin/screen"
	"github.com/supakorn-kn/peponi-admin/table"
)

type emptyModel[T objects.Record] struct{}

func (emptyModel[T]) Search(context.Context, models.ListQuery) (models.PaginationData[T], error) {
	return models.PaginationData[T]{}, nil
}

func (emptyModel[T]) GetByID(context.Context, int64) (T, error) {

	var item T
	return item, nil
}

func (emptyModel[T]) Insert(_ context.Context, item T) (T, error) { return item, nil }

func (emptyModel[T]) Update(context.Context, T) error { return nil }

func (emptyModel[T]) Delete(context.Context, int64) error { return nil }

func (emptyModel[T]) SetStatus(context.Context, int64, int) error { return nil }

func newFAQScreen() *screen.Screen[objects.FAQ] {
	return screen.New[objects.FAQ](emptyModel[objects.FAQ]{}, table.Config[objects.FAQ]{}, screen.Options{Entity: "faqs"})
}

func newBlogScreen() *screen.Screen[objects.Blog] {
	return screen.New[objects.Blog](emptyModel[objects.Blog]{}, table.Config[objects.Blog]{}, screen.Options{Entity: "blogs"})
}

type SessionTestSuite struct {
	suite.Suite
	manager *Manager
	g       *gin.Engine
}

func (s *SessionTestSuite) SetupTest() {

	gin.SetMode(gin.TestMode)

	s.manager = NewManager(16, time.Hour, false, nil)

	s.g = gin.New()
	s.g.Use(s.manager.Middleware())
	s.g.GET("/whoami", func(c *gin.Context) {

		sess, ok := From(c)
		s.Require().True(ok)
		c.String(http.StatusOK, sess.ID)
	})
}

func (s *SessionTestSuite) TestCookie() {

	s.Run("New visitors get a session cookie", func() {

		recorder := httptest.NewRecorder()
		s.g.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		s.Require().Equal(http.StatusOK, recorder.Code)
		cookies := recorder.Result().Cookies()
		s.Require().Len(cookies, 1)
		s.Require().Equal(CookieName, cookies[0].Name)
		s.Require().Equal(recorder.Body.String(), cookies[0].Value)
		s.Require().True(cookies[0].HttpOnly)
	})

	s.Run("Returning visitors keep their session", func() {

		first := httptest.NewRecorder()
		s.g.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		cookie := first.Result().Cookies()[0]

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(cookie)

		second := httptest.NewRecorder()
		s.g.ServeHTTP(second, req)

		s.Require().Equal(first.Body.String(), second.Body.String())
		s.Require().Empty(second.Result().Cookies())
	})

	s.Run("Unknown cookies start a new session", func() {

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})

		recorder := httptest.NewRecorder()
		s.g.ServeHTTP(recorder, req)

		s.Require().NotEqual("forged", recorder.Body.String())
	})
}

func (s *SessionTestSuite) TestAcquire() {

	sess := &Session{ID: "test"}

	faqs, created := Acquire(sess, "faqs", newFAQScreen)
	s.Require().True(created)

	again, created := Acquire(sess, "faqs", newFAQScreen)
	s.Require().False(created)
	s.Require().Same(faqs, again)

	_, created = Acquire(sess, "blogs", newBlogScreen)
	s.Require().True(created)
	s.Require().Equal("blogs", sess.Mounted().Entity())

	sess.Unmount()
	s.Require().Nil(sess.Mounted())
}

func TestSession(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}
