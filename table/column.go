package table

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Kind uint8

const (
	TextKind Kind = iota
	ImageKind
	StatusKind
	DateKind
	MoneyKind
	ActionsKind
)

var kindNames = [...]string{"text", "image", "status", "date", "money", "actions"}

func (k Kind) String() string {

	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "text"
}

// Column describes one table column. A column without an Accessor is purely presentational.
type Column[R any] struct {
	ID       string
	Header   string
	Accessor func(R) any
	Kind     Kind
	Sortable bool
	Hidden   bool
}

func (c Column[R]) presentational() bool {
	return c.Accessor == nil
}

// Format renders an accessor value as cell text.
func Format(kind Kind, value any) string {

	if value == nil {
		return ""
	}

	switch kind {

	case StatusKind:
		if status, ok := value.(int); ok {
			if status == 1 {
				return "Active"
			}
			return "Inactive"
		}

	case DateKind:
		if t, ok := value.(time.Time); ok {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006")
		}

	case MoneyKind:
		switch v := value.(type) {
		case decimal.Decimal:
			return v.StringFixed(2)
		case float64:
			return decimal.NewFromFloat(v).StringFixed(2)
		}
	}

	return fmt.Sprint(value)
}

// compare orders two accessor values. Values of unknown types are compared by their text.
func compare(a, b any) int {

	switch x := a.(type) {

	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}

	case int64:
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y)
		}

	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}

	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(strings.ToLower(x), strings.ToLower(y))
		}

	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}

	case decimal.Decimal:
		if y, ok := b.(decimal.Decimal); ok {
			return x.Cmp(y)
		}

	case bool:
		if y, ok := b.(bool); ok {
			return cmp.Compare(boolRank(x), boolRank(y))
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func boolRank(b bool) int {

	if b {
		return 1
	}

	return 0
}
