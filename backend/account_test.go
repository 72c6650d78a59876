package backend

import (
	"context"
	"net/http"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/objects"
)

func (s *BackendTestSuite) TestProfile() {

	ctx := WithToken(context.Background(), "admin-token")

	s.Run("Should read the first result", func() {

		email := gofakeit.Email()
		s.reply(http.StatusOK, map[string]any{"result": []map[string]any{{"username": "root", "email": email}}})

		account, err := s.client.Profile(ctx, 4)
		s.Require().NoError(err)
		s.Require().Equal(Admin{AdminID: 4, UserName: "root", Email: email}, account)

		req := s.request()
		s.Require().Equal("/admin/4", req.path)
		s.Require().Equal("Bearer admin-token", req.auth)
	})

	s.Run("Should map 404 to not found error", func() {

		s.reply(http.StatusNotFound, map[string]any{"message": "no such admin"})

		_, err := s.client.Profile(ctx, 4)
		s.Require().Equal(errors.ObjectIDNotFoundError.New(int64(4)), err)
	})

	s.Run("Should reject reply without account", func() {

		s.reply(http.StatusOK, map[string]any{"result": []any{}})

		_, err := s.client.Profile(ctx, 4)
		s.Require().True(errors.HasCode(err, errors.BackendResponseInvalidCode))
	})
}

func (s *BackendTestSuite) TestChangePassword() {

	change := objects.PasswordChange{AdminID: 4, OldPassword: "old-secret", NewPassword: "new-secret", ConfirmPassword: "new-secret"}

	s.Run("Should send the passwords without the confirmation", func() {

		s.reply(http.StatusOK, map[string]any{"message": "Password updated"})
		s.Require().NoError(s.client.ChangePassword(context.Background(), change))

		req := s.request()
		s.Require().Equal(http.MethodPut, req.method)
		s.Require().Equal("/admin/change-password/4", req.path)

		s.Require().JSONEq(`{"id":4,"oldPassword":"old-secret","newPassword":"new-secret"}`, req.body)
	})

	s.Run("Should report a rejected current password as validation failure", func() {

		s.reply(http.StatusBadRequest, map[string]any{"message": "Old password does not match"})

		err := s.client.ChangePassword(context.Background(), change)
		s.Require().Equal(errors.ValidationFailedError.New("Old password does not match"), err)
	})

	s.Run("Should fall back to a default message", func() {

		s.reply(http.StatusUnauthorized, map[string]any{})

		err := s.client.ChangePassword(context.Background(), change)
		s.Require().Equal(errors.ValidationFailedError.New("current password is incorrect"), err)
	})

	s.Run("Should keep server failures as backend errors", func() {

		s.reply(http.StatusInternalServerError, map[string]any{"message": "boom"})

		err := s.client.ChangePassword(context.Background(), change)
		s.Require().True(errors.HasCode(err, errors.BackendRequestFailedErrorCode))
	})
}

func (s *BackendTestSuite) TestStats() {

	s.Run("Should read totals and revenue", func() {

		s.reply(http.StatusOK, map[string]any{"result": []map[string]any{{"product": 12, "user": 7, "blog": 3, "revenue": "1234.50"}}})

		stats, err := s.client.Stats(context.Background())
		s.Require().NoError(err)
		s.Require().Equal(int64(12), stats.Products)
		s.Require().Equal(int64(7), stats.Users)
		s.Require().Equal(int64(3), stats.Blogs)
		s.Require().True(decimal.RequireFromString("1234.5").Equal(stats.Revenue))
		s.Require().Equal("/dash", s.request().path)
	})

	s.Run("Should default missing revenue to zero", func() {

		s.reply(http.StatusOK, map[string]any{"result": []map[string]any{{"product": 1, "user": 0, "blog": 0, "revenue": nil}}})

		stats, err := s.client.Stats(context.Background())
		s.Require().NoError(err)
		s.Require().True(stats.Revenue.IsZero())
	})

	s.Run("Should reject unreadable revenue", func() {

		s.reply(http.StatusOK, map[string]any{"result": []map[string]any{{"revenue": "lots"}}})

		_, err := s.client.Stats(context.Background())
		s.Require().True(errors.HasCode(err, errors.BackendResponseInvalidCode))
	})
}

func (s *BackendTestSuite) TestFeatured() {

	products := []objects.FeaturedProduct{
		{FeaturedID: 5, FeatureName: 2, ProductID: 10, ProductName: gofakeit.ProductName()},
		{FeaturedID: 6, FeatureName: 2, ProductID: 11, ProductName: gofakeit.ProductName()},
	}

	s.Run("Should read featured products of a group", func() {

		s.reply(http.StatusOK, map[string]any{"data": []any{products}})

		featured, err := s.client.FeaturedProducts(context.Background(), 2)
		s.Require().NoError(err)
		s.Require().Equal(products, featured)
		s.Require().Equal("/feature/features/2", s.request().path)
	})

	s.Run("Should treat a missing list as empty", func() {

		s.reply(http.StatusOK, map[string]any{"data": []any{}})

		candidates, err := s.client.FeatureCandidates(context.Background(), 3)
		s.Require().NoError(err)
		s.Require().Empty(candidates)
		s.Require().Equal("/feature/3", s.request().path)
	})

	s.Run("Should add a product to a group", func() {

		s.reply(http.StatusOK, map[string]any{"message": "Added"})
		s.Require().NoError(s.client.AddFeatured(context.Background(), 2, 11))

		req := s.request()
		s.Require().Equal(http.MethodPost, req.method)
		s.Require().Equal("/feature", req.path)
		s.Require().JSONEq(`{"FeatureName":2,"ProductID":11}`, req.body)
	})

	s.Run("Should remove a featured product", func() {

		s.reply(http.StatusOK, map[string]any{"message": "Deleted"})
		s.Require().NoError(s.client.RemoveFeatured(context.Background(), 6))

		req := s.request()
		s.Require().Equal(http.MethodDelete, req.method)
		s.Require().Equal("/feature/6", req.path)

		s.reply(http.StatusNotFound, map[string]any{"message": "gone"})

		err := s.client.RemoveFeatured(context.Background(), 6)
		s.Require().Equal(errors.ObjectIDNotFoundError.New(int64(6)), err)
	})
}
