package objects

import "strconv"

// Record is a row of any admin screen.
type Record interface {
	GetID() int64
	IsNil() bool
}

// IDSetter is implemented by records that can be copied with a new primary key.
type IDSetter[T any] interface {
	WithID(id int64) T
}

// StatusHolder is implemented by records carrying an active/inactive status flag.
type StatusHolder interface {
	GetStatus() int
}

// Normalizer is implemented by records that derive fields (slugs, trimmed names) before being saved.
type Normalizer[T any] interface {
	Normalize() T
}

const (
	StatusInactive = 0
	StatusActive   = 1
)

// ToggledStatus returns the status a toggle switch moves to from current.
func ToggledStatus(current int) int {

	if current == StatusActive {
		return StatusInactive
	}

	return StatusActive
}

// Key renders a record identifier as a row key.
func Key[T Record](item T) string {
	return strconv.FormatInt(item.GetID(), 10)
}
