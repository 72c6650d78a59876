package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/supakorn-kn/peponi-admin/errors"
	"go.mongodb.org/mongo-driver/bson"
)

type AggregatedResult[T any] struct {
	Count int `bson:"count"`
	Total int `bson:"total"`
	Data  []T `bson:"data"`
}

// MatchType selects how a search term is compared with field values. The zero value is a partial match.
type MatchType uint8

const (
	PartialMatchType MatchType = iota
	EqualMatchType
	StartWithMatchType
	EndWithMatchType
)

func (t MatchType) Valid() bool {
	return t <= EndWithMatchType
}

// Matches compares value with term the way the BSON of t does, ignoring case except for equal matches.
func (t MatchType) Matches(value, term string) bool {

	switch t {

	case EqualMatchType:
		return value == term

	case StartWithMatchType:
		return strings.HasPrefix(strings.ToLower(value), strings.ToLower(term))

	case EndWithMatchType:
		return strings.HasSuffix(strings.ToLower(value), strings.ToLower(term))

	default:
		return strings.Contains(strings.ToLower(value), strings.ToLower(term))
	}
}

func CreateMatchBson(key string, value any, matchType MatchType) (bson.D, error) {

	switch matchType {

	case EqualMatchType:
		return EqualMatchBson(key, value), nil

	case PartialMatchType:
		return PartialMatchBson(key, value), nil

	case StartWithMatchType:
		return StartWithMatchBson(key, value), nil

	case EndWithMatchType:
		return EndWithMatchBson(key, value), nil

	default:
		return nil, errors.MatchTypeInvalidError.New(matchType)
	}
}

// EqualMatchBson creates BSON for equal search (Case-sensitive)
func EqualMatchBson(key string, value any) bson.D {
	return bson.D{{Key: key, Value: value}}
}

// PartialMatchBson creates BSON for partial search (Case-insensitive)
func PartialMatchBson(key string, value any) bson.D {
	return bson.D{{Key: key, Value: bson.M{"$regex": quote(value), "$options": "i"}}}
}

// StartWithMatchBson creates BSON for start with keyword search (Case-insensitive)
func StartWithMatchBson(key string, value any) bson.D {
	format := fmt.Sprintf("^%s", quote(value))
	return bson.D{{Key: key, Value: bson.M{"$regex": format, "$options": "im"}}}
}

// EndWithMatchBson creates BSON for end with keyword search (Case-insensitive)
func EndWithMatchBson(key string, value any) bson.D {
	format := fmt.Sprintf("%s$", quote(value))
	return bson.D{{Key: key, Value: bson.M{"$regex": format, "$options": "im"}}}
}

// AnyFieldMatchBson matches documents where at least one of keys matches term by matchType.
func AnyFieldMatchBson(keys []string, term string, matchType MatchType) (bson.D, error) {

	conditions := bson.A{}
	for _, key := range keys {

		cond, err := CreateMatchBson(key, term, matchType)
		if err != nil {
			return nil, err
		}

		conditions = append(conditions, cond)
	}

	return bson.D{{Key: "$or", Value: conditions}}, nil
}

// FilterValue converts a query-string filter into the type stored in documents.
func FilterValue(raw string) any {

	if number, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return number
	}

	return raw
}

func quote(value any) string {
	return regexp.QuoteMeta(fmt.Sprint(value))
}
