package objects

import (
	"reflect"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

type Blog struct {
	BlogID    int64     `json:"id" bson:"id" mapstructure:"id"`
	Title     string    `json:"title" bson:"title" mapstructure:"title" validate:"required,min=3,max=200"`
	Slug      string    `json:"slug" bson:"slug" mapstructure:"slug"`
	Image     string    `json:"image" bson:"image" mapstructure:"image"`
	Content   string    `json:"content" bson:"content" mapstructure:"content" validate:"required"`
	Status    int       `json:"Status" bson:"Status" mapstructure:"Status" validate:"oneof=0 1"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" mapstructure:"-"`
}

func (b Blog) GetID() int64 {
	return b.BlogID
}

func (b Blog) IsNil() bool {
	return reflect.ValueOf(b).IsZero()
}

func (b Blog) WithID(id int64) Blog {

	b.BlogID = id
	return b
}

func (b Blog) GetStatus() int {
	return b.Status
}

func (b Blog) Normalize() Blog {

	b.Title = strings.TrimSpace(b.Title)
	if b.Slug == "" {
		b.Slug = slug.Make(b.Title)
	}

	return b
}

type Banner struct {
	BannerID    int64  `json:"BannerId" bson:"BannerId" mapstructure:"BannerId"`
	BannerTitle string `json:"BannerTitle" bson:"BannerTitle" mapstructure:"BannerTitle" validate:"required,max=120"`
	Image       string `json:"Image" bson:"Image" mapstructure:"Image"`
	Link        string `json:"Link" bson:"Link" mapstructure:"Link" validate:"omitempty,url"`
	Status      int    `json:"Status" bson:"Status" mapstructure:"Status" validate:"oneof=0 1"`
}

func (b Banner) GetID() int64 {
	return b.BannerID
}

func (b Banner) IsNil() bool {
	return reflect.ValueOf(b).IsZero()
}

func (b Banner) WithID(id int64) Banner {

	b.BannerID = id
	return b
}

func (b Banner) GetStatus() int {
	return b.Status
}

type FAQ struct {
	FAQID    int64  `json:"id" bson:"id" mapstructure:"id"`
	Question string `json:"question" bson:"question" mapstructure:"question" validate:"required,min=5"`
	Answer   string `json:"answer" bson:"answer" mapstructure:"answer" validate:"required"`
}

func (f FAQ) GetID() int64 {
	return f.FAQID
}

func (f FAQ) IsNil() bool {
	return reflect.ValueOf(f).IsZero()
}

func (f FAQ) WithID(id int64) FAQ {

	f.FAQID = id
	return f
}
