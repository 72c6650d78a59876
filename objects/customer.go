package objects

import (
	"reflect"
	"time"

	"github.com/shopspring/decimal"
)

type Newsletter struct {
	NewsletterID int64     `json:"id" bson:"id" mapstructure:"id"`
	Email        string    `json:"email" bson:"email" mapstructure:"email" validate:"required,email"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" mapstructure:"-"`
}

func (n Newsletter) GetID() int64 {
	return n.NewsletterID
}

func (n Newsletter) IsNil() bool {
	return reflect.ValueOf(n).IsZero()
}

func (n Newsletter) WithID(id int64) Newsletter {

	n.NewsletterID = id
	return n
}

type Contact struct {
	ContactID int64     `json:"ContactID" bson:"ContactID" mapstructure:"ContactID"`
	FullName  string    `json:"FullName" bson:"FullName" mapstructure:"FullName"`
	Email     string    `json:"Email" bson:"Email" mapstructure:"Email"`
	Phone     string    `json:"Phone" bson:"Phone" mapstructure:"Phone"`
	Message   string    `json:"Message" bson:"Message" mapstructure:"Message"`
	CreatedAt time.Time `json:"CreatedAt" bson:"CreatedAt" mapstructure:"-"`
}

func (c Contact) GetID() int64 {
	return c.ContactID
}

func (c Contact) IsNil() bool {
	return reflect.ValueOf(c).IsZero()
}

func (c Contact) WithID(id int64) Contact {

	c.ContactID = id
	return c
}

type Review struct {
	ReviewID     int64     `json:"id" bson:"id" mapstructure:"id"`
	ProductName  string    `json:"ProductName" bson:"ProductName" mapstructure:"ProductName"`
	UserName     string    `json:"userName" bson:"userName" mapstructure:"userName"`
	EmailAddress string    `json:"emailAddress" bson:"emailAddress" mapstructure:"emailAddress"`
	Rating       int       `json:"rating" bson:"rating" mapstructure:"rating" validate:"gte=1,lte=5"`
	ReviewText   string    `json:"review_text" bson:"review_text" mapstructure:"review_text"`
	ReviewDate   time.Time `json:"review_date" bson:"review_date" mapstructure:"-"`
	Status       int       `json:"status" bson:"status" mapstructure:"status" validate:"oneof=0 1"`
}

func (r Review) GetID() int64 {
	return r.ReviewID
}

func (r Review) IsNil() bool {
	return reflect.ValueOf(r).IsZero()
}

func (r Review) WithID(id int64) Review {

	r.ReviewID = id
	return r
}

func (r Review) GetStatus() int {
	return r.Status
}

type Order struct {
	OrderID      int64           `json:"OrderID" bson:"OrderID" mapstructure:"OrderID"`
	CustomerName string          `json:"CustomerName" bson:"CustomerName" mapstructure:"CustomerName"`
	Email        string          `json:"Email" bson:"Email" mapstructure:"Email"`
	Total        decimal.Decimal `json:"Total" bson:"Total" mapstructure:"Total"`
	OrderStatus  string          `json:"OrderStatus" bson:"OrderStatus" mapstructure:"OrderStatus" validate:"oneof=pending processing shipped delivered cancelled"`
	CreatedAt    time.Time       `json:"CreatedAt" bson:"CreatedAt" mapstructure:"-"`
}

func (o Order) GetID() int64 {
	return o.OrderID
}

func (o Order) IsNil() bool {
	return reflect.ValueOf(o).IsZero()
}

func (o Order) WithID(id int64) Order {

	o.OrderID = id
	return o
}

type User struct {
	UserID    int64     `json:"id" bson:"id" mapstructure:"id"`
	Name      string    `json:"name" bson:"name" mapstructure:"name" validate:"required,min=2"`
	Email     string    `json:"email" bson:"email" mapstructure:"email" validate:"required,email"`
	Status    int       `json:"status" bson:"status" mapstructure:"status" validate:"oneof=0 1 2"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" mapstructure:"-"`
}

const UserBlocked = 2

func (u User) GetID() int64 {
	return u.UserID
}

func (u User) IsNil() bool {
	return reflect.ValueOf(u).IsZero()
}

func (u User) WithID(id int64) User {

	u.UserID = id
	return u
}

func (u User) GetStatus() int {
	return u.Status
}
