package catalog

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/supakorn-kn/peponi-admin/backend"
	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/supakorn-kn/peponi-admin/table"
)

type CatalogTestSuite struct {
	suite.Suite
}

func checkColumns[R objects.Record](s *CatalogTestSuite, entity Entity[R]) {

	seen := map[string]bool{}
	for _, column := range entity.Columns {

		s.Require().False(seen[column.ID], "%s has column %s twice", entity.Name, column.ID)
		seen[column.ID] = true

		if column.Sortable {
			s.Require().Contains(entity.Collection.SortFields, column.ID, "%s cannot sort %s on the server", entity.Name, column.ID)
		}
	}

	s.Require().NotEmpty(entity.Collection.Name)
	s.Require().NotEmpty(entity.Collection.ItemIDKey)
	s.Require().NotEmpty(entity.Endpoint.ListPath)
}

func (s *CatalogTestSuite) TestEntities() {

	checkColumns(s, Products)
	checkColumns(s, Categories)
	checkColumns(s, SubCategories)
	checkColumns(s, Attributes)
	checkColumns(s, Blogs)
	checkColumns(s, Banners)
	checkColumns(s, FAQs)
	checkColumns(s, Newsletters)
	checkColumns(s, Contacts)
	checkColumns(s, Reviews)
	checkColumns(s, Orders)
	checkColumns(s, Users)

	names := []string{}
	for _, meta := range All() {

		s.Require().NotContains(names, meta.Name)
		names = append(names, meta.Name)
	}

	s.Require().Len(names, 12)
}

func (s *CatalogTestSuite) TestLookup() {

	meta, ok := Lookup("sub-categories")
	s.Require().True(ok)
	s.Require().Equal("sub-category", meta.Noun)
	s.Require().True(meta.Editable())

	meta, ok = Lookup("contacts")
	s.Require().True(ok)
	s.Require().False(meta.Editable())

	_, ok = Lookup("books")
	s.Require().False(ok)
}

func (s *CatalogTestSuite) TestFilters() {

	s.Require().Nil(Products.Filters())
	s.Require().Nil(Reviews.Filters())
	s.Require().Equal(map[string]string{"OrderStatus": "pending"}, Orders.Filters())
	s.Require().Equal(map[string]string{"status": "1"}, Users.Filters())
	s.Require().Equal([]string{"status"}, Reviews.FilterKeys())
	s.Require().Empty(FAQs.FilterKeys())
}

func (s *CatalogTestSuite) TestShapes() {

	q := models.ListQuery{Page: 1, PageSize: 2}

	s.Run("Products report pages and count", func() {

		body := []byte(`{"products":[{"ProductID":1,"ProductName":"Mug"},{"ProductID":2,"ProductName":"Cup"}],"totalPages":4,"totalProducts":7}`)

		result, err := backend.Decode[objects.Product](body, Products.Endpoint.Shape, q)
		s.Require().NoError(err)
		s.Require().Equal(4, result.TotalPages)
		s.Require().Equal(7, result.Count)
		s.Require().Equal("Cup", result.Data[1].ProductName)
	})

	s.Run("Blogs report only the count", func() {

		body := []byte(`{"blogs":[{"id":1,"title":"Hello"}],"totalBlogs":5}`)

		result, err := backend.Decode[objects.Blog](body, Blogs.Endpoint.Shape, q)
		s.Require().NoError(err)
		s.Require().Equal(3, result.TotalPages)
		s.Require().Equal(5, result.Count)
	})

	s.Run("Contacts nest the count", func() {

		body := []byte(`{"data":[{"ContactID":3,"FullName":"Ann"}],"pagination":{"totalContacts":1}}`)

		result, err := backend.Decode[objects.Contact](body, Contacts.Endpoint.Shape, q)
		s.Require().NoError(err)
		s.Require().Equal(1, result.TotalPages)
		s.Require().Equal(int64(3), result.Data[0].ContactID)
	})

	s.Run("Sub-categories are picked out of every category", func() {

		body := []byte(`{"result":[
			{"CategoryID":1,"CategoryName":"Shoes"},
			{"CategoryID":2,"CategoryName":"Sneakers","ParentCategoryID":1},
			{"CategoryID":3,"CategoryName":"Boots","ParentCategoryID":1},
			{"CategoryID":4,"CategoryName":"Sandals","ParentCategoryID":1}
		]}`)

		result, err := backend.Decode[objects.Category](body, SubCategories.Endpoint.Shape, q)
		s.Require().NoError(err)
		s.Require().Equal(3, result.Count)
		s.Require().Equal(2, result.TotalPages)
		s.Require().Len(result.Data, 2)
		s.Require().True(slices.ContainsFunc(result.Data, func(c objects.Category) bool { return c.CategoryName == "Boots" }))
		s.Require().False(slices.ContainsFunc(result.Data, func(c objects.Category) bool { return !c.IsSubCategory() }))
	})
}

func (s *CatalogTestSuite) TestColumnsRender() {

	controller := table.New(table.Config[objects.Product]{Columns: Products.Columns, Key: objects.Key[objects.Product]})
	controller.SetData([]objects.Product{{ProductID: 1, ProductName: "Mug", Status: objects.StatusActive}})

	view := controller.Render()
	s.Require().Len(view.Rows, 1)
	s.Require().Len(view.Headers, len(Products.Columns))
}

func TestCatalog(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}
