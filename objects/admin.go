package objects

import (
	"github.com/shopspring/decimal"
)

// Stats are the totals shown on the dashboard home page.
type Stats struct {
	Products int64           `json:"product" bson:"product"`
	Users    int64           `json:"user" bson:"user"`
	Blogs    int64           `json:"blog" bson:"blog"`
	Revenue  decimal.Decimal `json:"revenue" bson:"revenue"`
}

// PasswordChange is the change password form of a signed in admin.
type PasswordChange struct {
	AdminID         int64  `json:"id" mapstructure:"-"`
	OldPassword     string `json:"oldPassword" mapstructure:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" mapstructure:"newPassword" validate:"required,min=6,nefield=OldPassword"`
	ConfirmPassword string `json:"-" mapstructure:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type FeatureGroup struct {
	ID   int
	Name string
}

// FeatureGroups are the storefront sections products can be featured in.
var FeatureGroups = []FeatureGroup{
	{ID: 1, Name: "Artworks"},
	{ID: 2, Name: "Portraits"},
	{ID: 3, Name: "Art Prints"},
	{ID: 4, Name: "Trending Products"},
}

func FeatureGroupByID(id int) (FeatureGroup, bool) {

	for _, group := range FeatureGroups {
		if group.ID == id {
			return group, true
		}
	}

	return FeatureGroup{}, false
}

// FeaturedProduct is a product placed in a feature group. Candidates for a group carry no FeaturedID yet.
type FeaturedProduct struct {
	FeaturedID  int64  `json:"FeaturedID"`
	FeatureName int    `json:"FeatureName"`
	ProductID   int64  `json:"ProductID"`
	ProductName string `json:"ProductName"`
	Image       string `json:"Image,omitempty"`
}
