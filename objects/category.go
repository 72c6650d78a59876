package objects

import (
	"reflect"
	"strings"

	"github.com/gosimple/slug"
)

// Category is both a top-level category and, when ParentCategoryID is set, a sub-category.
type Category struct {
	CategoryID         int64  `json:"CategoryID" bson:"CategoryID" mapstructure:"CategoryID"`
	CategoryName       string `json:"CategoryName" bson:"CategoryName" mapstructure:"CategoryName" validate:"required,min=2,max=120"`
	Slug               string `json:"Slug" bson:"Slug" mapstructure:"Slug"`
	Image              string `json:"Image" bson:"Image" mapstructure:"Image"`
	Status             int    `json:"Status" bson:"Status" mapstructure:"Status" validate:"oneof=0 1"`
	ParentCategoryID   int64  `json:"ParentCategoryID,omitempty" bson:"ParentCategoryID,omitempty" mapstructure:"ParentCategoryID" validate:"gte=0"`
	ParentCategoryName string `json:"ParentCategoryName,omitempty" bson:"ParentCategoryName,omitempty" mapstructure:"ParentCategoryName"`
}

func (c Category) GetID() int64 {
	return c.CategoryID
}

func (c Category) IsNil() bool {
	return reflect.ValueOf(c).IsZero()
}

func (c Category) WithID(id int64) Category {

	c.CategoryID = id
	return c
}

func (c Category) GetStatus() int {
	return c.Status
}

func (c Category) IsSubCategory() bool {
	return c.ParentCategoryID > 0
}

func (c Category) Normalize() Category {

	c.CategoryName = strings.TrimSpace(c.CategoryName)
	if c.Slug == "" {
		c.Slug = slug.Make(c.CategoryName)
	}

	return c
}

type Attribute struct {
	AttributeID int64    `json:"id" bson:"id" mapstructure:"id"`
	Name        string   `json:"name" bson:"name" mapstructure:"name" validate:"required,min=1,max=80"`
	Values      []string `json:"values" bson:"values" mapstructure:"values" validate:"dive,required"`
}

func (a Attribute) GetID() int64 {
	return a.AttributeID
}

func (a Attribute) IsNil() bool {
	return reflect.ValueOf(a).IsZero()
}

func (a Attribute) WithID(id int64) Attribute {

	a.AttributeID = id
	return a
}

// Normalize trims every value and drops the empty ones left by trailing commas.
func (a Attribute) Normalize() Attribute {

	a.Name = strings.TrimSpace(a.Name)

	values := make([]string, 0, len(a.Values))
	for _, value := range a.Values {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}

	a.Values = values
	return a
}
