package objects

import (
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ProductID          int64           `json:"ProductID" bson:"ProductID" mapstructure:"ProductID"`
	ProductName        string          `json:"ProductName" bson:"ProductName" mapstructure:"ProductName" validate:"required,min=2,max=200"`
	CategoryID         int64           `json:"CategoryID" bson:"CategoryID" mapstructure:"CategoryID" validate:"required,gt=0"`
	CategoryName       string          `json:"CategoryName" bson:"CategoryName" mapstructure:"CategoryName"`
	Image              string          `json:"Image" bson:"Image" mapstructure:"Image"`
	Description        string          `json:"Description" bson:"Description" mapstructure:"Description"`
	ProductPrice       decimal.Decimal `json:"ProductPrice" bson:"ProductPrice" mapstructure:"ProductPrice"`
	SellingPrice       decimal.Decimal `json:"SellingPrice" bson:"SellingPrice" mapstructure:"SellingPrice"`
	DiscountPercentage float64         `json:"DiscountPercentage" bson:"DiscountPercentage" mapstructure:"DiscountPercentage" validate:"gte=0,lte=100"`
	Stock              int             `json:"Stock" bson:"Stock" mapstructure:"Stock" validate:"gte=0"`
	Status             int             `json:"Status" bson:"Status" mapstructure:"Status" validate:"oneof=0 1"`
	CreatedAt          time.Time       `json:"created_at" bson:"created_at" mapstructure:"-"`
}

func (p Product) GetID() int64 {
	return p.ProductID
}

func (p Product) IsNil() bool {
	return reflect.ValueOf(p).IsZero()
}

func (p Product) WithID(id int64) Product {

	p.ProductID = id
	return p
}

func (p Product) GetStatus() int {
	return p.Status
}

// Normalize derives the selling price from the list price and discount when it was left empty.
func (p Product) Normalize() Product {

	p.ProductName = strings.TrimSpace(p.ProductName)
	if p.SellingPrice.IsZero() && !p.ProductPrice.IsZero() {

		discount := decimal.NewFromFloat(p.DiscountPercentage).Div(decimal.NewFromInt(100))
		p.SellingPrice = p.ProductPrice.Sub(p.ProductPrice.Mul(discount)).Round(2)
	}

	return p
}
