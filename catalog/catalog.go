package catalog

import (
	"github.com/supakorn-kn/peponi-admin/backend"
	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/supakorn-kn/peponi-admin/table"
)

type InputType string

const (
	TextInput     InputType = "text"
	TextAreaInput InputType = "textarea"
	NumberInput   InputType = "number"
	EmailInput    InputType = "email"
	URLInput      InputType = "url"
	SelectInput   InputType = "select"
)

type Option struct {
	Value string
	Label string
}

// Field is one input of the create and edit forms. Name is the mapstructure key of the record field.
type Field struct {
	Name     string
	Label    string
	Input    InputType
	Required bool
	Options  []Option

	// Help is shown under the input, e.g. how list values are separated.
	Help string
}

// Tabs narrow a list to one value of Key, the first option being the default.
type Tabs struct {
	Key     string
	Options []Option
}

func (t *Tabs) Default() string {

	if t == nil || len(t.Options) == 0 {
		return ""
	}

	return t.Options[0].Value
}

// Meta is the record type independent part of an entity.
type Meta struct {
	Name  string
	Noun  string
	Title string

	Fields     []Field
	Tabs       *Tabs
	BulkDelete bool
}

// Editable reports whether records of the entity have a create and edit form.
func (m Meta) Editable() bool {
	return len(m.Fields) > 0
}

// Entity describes how one record type is listed, stored and edited.
type Entity[R objects.Record] struct {
	Meta

	Columns    []table.Column[R]
	Endpoint   backend.Endpoint
	Collection models.CollectionOptions
}

// Filters returns the filters a new list screen starts with.
func (e Entity[R]) Filters() map[string]string {

	value := e.Tabs.Default()
	if value == "" {
		return nil
	}

	return map[string]string{e.Tabs.Key: value}
}

// FilterKeys lists the query parameters the JSON list route passes to the data source.
func (e Entity[R]) FilterKeys() []string {

	if e.Tabs == nil {
		return nil
	}

	return []string{e.Tabs.Key}
}

// All lists every entity in menu order.
func All() []Meta {

	return []Meta{
		Products.Meta,
		Categories.Meta,
		SubCategories.Meta,
		Attributes.Meta,
		Blogs.Meta,
		Banners.Meta,
		FAQs.Meta,
		Newsletters.Meta,
		Contacts.Meta,
		Reviews.Meta,
		Orders.Meta,
		Users.Meta,
	}
}

// Lookup finds the Meta of name.
func Lookup(name string) (Meta, bool) {

	for _, meta := range All() {
		if meta.Name == name {
			return meta, true
		}
	}

	return Meta{}, false
}
