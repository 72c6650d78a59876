package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SortData struct {
	Key    string
	SortBy SortDirection
}

// SearchPipelineBuilder builds the match, facet and project stages of a paginated aggregation.
type SearchPipelineBuilder struct {
	matchConditions bson.A
	sort            bson.D
	skip            int
	limit           int
}

func NewSearchPipelineBuilder() *SearchPipelineBuilder {
	return &SearchPipelineBuilder{matchConditions: bson.A{}}
}

func (b *SearchPipelineBuilder) Match(key string, value any, matchType MatchType) error {

	matchBson, err := CreateMatchBson(key, value, matchType)
	if err != nil {
		return err
	}

	b.matchConditions = append(b.matchConditions, matchBson)
	return nil
}

func (b *SearchPipelineBuilder) MatchBson(cond bson.D) {
	b.matchConditions = append(b.matchConditions, cond)
}

func (b *SearchPipelineBuilder) SortedBy(sortData []SortData) {

	b.sort = bson.D{}
	for _, data := range sortData {

		order := 1
		if data.SortBy == SortDESC {
			order = -1
		}

		b.sort = append(b.sort, bson.E{Key: data.Key, Value: order})
	}
}

func (b *SearchPipelineBuilder) Skip(skip int) {
	b.skip = skip
}

func (b *SearchPipelineBuilder) Limit(limit int) {
	b.limit = limit
}

func (b *SearchPipelineBuilder) BuildPipeline() mongo.Pipeline {

	matchConditions := b.matchConditions
	if len(matchConditions) == 0 {
		matchConditions = bson.A{bson.D{}}
	}

	matchStage := bson.D{
		{
			Key: "$match", Value: bson.D{
				{Key: "$and", Value: matchConditions},
			},
		},
	}

	paginateResultQuery := bson.A{}
	if len(b.sort) > 0 {
		paginateResultQuery = append(paginateResultQuery, bson.D{{Key: "$sort", Value: b.sort}})
	}

	paginateResultQuery = append(paginateResultQuery,
		bson.D{{Key: "$skip", Value: b.skip}},
		bson.D{{Key: "$limit", Value: b.limit}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "data", Value: bson.D{{Key: "$push", Value: "$$ROOT"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	)

	matchResultQuery := bson.A{
		bson.D{{Key: "$count", Value: "total"}},
	}

	facetStage := bson.D{
		{
			Key: "$facet", Value: bson.D{
				{Key: "paginate_result", Value: paginateResultQuery},
				{Key: "match_result", Value: matchResultQuery},
			},
		},
	}

	projectStage := bson.D{
		{
			Key: "$project", Value: bson.D{
				{Key: "count", Value: bson.D{{Key: "$first", Value: "$paginate_result.count"}}},
				{Key: "total", Value: bson.D{{Key: "$first", Value: "$match_result.total"}}},
				{Key: "data", Value: bson.D{{Key: "$first", Value: "$paginate_result.data"}}},
			},
		},
	}

	return mongo.Pipeline{matchStage, facetStage, projectStage}
}
