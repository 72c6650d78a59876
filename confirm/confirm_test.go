package confirm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfirmTestSuite struct {
	suite.Suite
}

func (s *ConfirmTestSuite) TestDeletePrompt() {

	s.Run("Single record", func() {

		prompt := DeletePrompt("product", 1)
		s.Require().Equal("Are you sure you want to delete this product?", prompt.Message)
		s.Require().Equal(1, prompt.Count)
	})

	s.Run("Many records", func() {

		prompt := DeletePrompt("product", 3)
		s.Require().Equal("Are you sure you want to delete 3 product records?", prompt.Message)
	})
}

func (s *ConfirmTestSuite) TestAlways() {

	accepted, err := Always(true).Confirm(context.Background(), Prompt{})
	s.Require().NoError(err)
	s.Require().True(accepted)

	accepted, err = Always(false).Confirm(context.Background(), Prompt{})
	s.Require().NoError(err)
	s.Require().False(accepted)
}

func TestConfirm(t *testing.T) {
	suite.Run(t, new(ConfirmTestSuite))
}
