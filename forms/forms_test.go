package forms

import (
	"net/url"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/objects"
)

type FormsTestSuite struct {
	suite.Suite
}

func (s *FormsTestSuite) TestDecodeProduct() {

	s.Run("Valid product is decoded and normalized", func() {

		name := gofakeit.ProductName()

		values := url.Values{
			"ProductName":        {"  " + name + "  "},
			"CategoryID":         {"3"},
			"ProductPrice":       {"200.00"},
			"DiscountPercentage": {"25"},
			"Stock":              {"8"},
			"Status":             {"1"},
		}

		product, fields, err := Decode[objects.Product](values)
		s.Require().NoError(err)
		s.Require().Empty(fields)

		s.Require().Equal(name, product.ProductName)
		s.Require().Equal(int64(3), product.CategoryID)
		s.Require().True(decimal.NewFromInt(150).Equal(product.SellingPrice))
		s.Require().Equal(8, product.Stock)
	})

	s.Run("Invalid fields are reported by their form names", func() {

		values := url.Values{
			"ProductName":        {"x"},
			"DiscountPercentage": {"120"},
			"Status":             {"3"},
		}

		_, fields, err := Decode[objects.Product](values)
		s.Require().NoError(err)

		s.Require().Equal("Must be at least 2 characters", fields["ProductName"])
		s.Require().Equal("This field is required", fields["CategoryID"])
		s.Require().Equal("Must be 100 or less", fields["DiscountPercentage"])
		s.Require().Equal("Must be one of: 0 1", fields["Status"])

		s.Require().True(errors.HasCode(fields.AsError(), errors.ValidationFailedErrorCode))
	})

	s.Run("Unconvertible values fail as a whole", func() {

		_, _, err := Decode[objects.Product](url.Values{"Stock": {"many"}})
		s.Require().True(errors.HasCode(err, errors.ValidationFailedErrorCode))

		_, _, err = Decode[objects.Product](url.Values{"ProductPrice": {"cheap"}})
		s.Require().True(errors.HasCode(err, errors.ValidationFailedErrorCode))
	})
}

func (s *FormsTestSuite) TestDecodeCategory() {

	category, fields, err := Decode[objects.Category](url.Values{"CategoryName": {"Summer Shoes"}, "Status": {"1"}})
	s.Require().NoError(err)
	s.Require().Empty(fields)
	s.Require().Equal("summer-shoes", category.Slug)
}

func (s *FormsTestSuite) TestDecodeAttribute() {

	attribute, fields, err := Decode[objects.Attribute](url.Values{"name": {"Size"}, "values": {"S, M,L,"}})
	s.Require().NoError(err)
	s.Require().Empty(fields)
	s.Require().Equal([]string{"S", "M", "L"}, attribute.Values)
}

func (s *FormsTestSuite) TestValidate() {

	s.Require().Nil(Validate(objects.FAQ{Question: "How do I return?", Answer: "Within 30 days."}))

	fields := Validate(objects.Newsletter{Email: "not-an-email"})
	s.Require().Equal("Must be a valid email address", fields["email"])
}

func (s *FormsTestSuite) TestDecodePasswordChange() {

	password := gofakeit.Password(true, true, true, false, false, 10)

	s.Run("Confirmation must repeat the new password", func() {

		values := url.Values{"oldPassword": {"old-secret"}, "newPassword": {password}, "confirmPassword": {password + "x"}}

		_, fields, err := Decode[objects.PasswordChange](values)
		s.Require().NoError(err)
		s.Require().Equal(FieldErrors{"confirmPassword": "Does not match"}, fields)
	})

	s.Run("New password must differ from the current one", func() {

		values := url.Values{"oldPassword": {"old-secret"}, "newPassword": {"old-secret"}, "confirmPassword": {"old-secret"}}

		_, fields, err := Decode[objects.PasswordChange](values)
		s.Require().NoError(err)
		s.Require().Equal("Must be different from the current value", fields["newPassword"])
	})

	s.Run("Identifier is never read from the form", func() {

		values := url.Values{"oldPassword": {"old-secret"}, "newPassword": {password}, "confirmPassword": {password}, "id": {"7"}}

		change, fields, err := Decode[objects.PasswordChange](values)
		s.Require().NoError(err)
		s.Require().Empty(fields)
		s.Require().Zero(change.AdminID)
		s.Require().Equal(password, change.NewPassword)
	})
}

func TestForms(t *testing.T) {
	suite.Run(t, new(FormsTestSuite))
}
