package models

import (
	"context"
	"errors"
	"fmt"
	"slices"

	serverError "github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/mongodb"
	"github.com/supakorn-kn/peponi-admin/objects"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollectionName = "counters"

type CollectionOptions struct {
	Name         string
	ItemIDKey    string
	SearchFields []string
	SortFields   []string
	StatusKey    string
	Required     []string

	// Scope is matched by every search, e.g. to keep sub-categories apart from categories.
	Scope bson.D
}

// Collection is a Model stored in one MongoDB collection.
type Collection[T objects.Record] struct {
	Coll     *mongo.Collection
	counters *mongo.Collection
	opts     CollectionOptions
}

func NewCollection[T objects.Record](ctx context.Context, conn *mongodb.MongoDBConn, opts CollectionOptions) (*Collection[T], error) {

	if opts.Name == "" || opts.ItemIDKey == "" {
		return nil, errors.New("collection name and item ID key are required")
	}

	model := &Collection[T]{opts: opts}

	coll, err := model.createCollection(ctx, conn)
	if err != nil {
		return nil, err
	}

	if err := model.createIndexes(ctx, coll); err != nil {
		return nil, err
	}

	model.Coll = coll
	model.counters = conn.GetCollection(countersCollectionName)

	return model, nil
}

func (m *Collection[T]) GetCollectionName() string {
	return m.opts.Name
}

func (m *Collection[T]) Capabilities() Capabilities {

	return Capabilities{
		ServerSort: len(m.opts.SortFields) > 0,
		Status:     m.opts.StatusKey != "",
		Writable:   true,
	}
}

func (m *Collection[T]) createCollection(ctx context.Context, conn *mongodb.MongoDBConn) (*mongo.Collection, error) {

	crudDB := conn.GetDatabase()
	collectionName := m.opts.Name

	collectionNameList, err := crudDB.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	required := m.opts.Required
	if !slices.Contains(required, m.opts.ItemIDKey) {
		required = append([]string{m.opts.ItemIDKey}, required...)
	}

	validator := bson.D{
		{
			Key: "$jsonSchema", Value: bson.M{
				"bsonType": "object",
				"required": required,
				"properties": bson.M{
					m.opts.ItemIDKey: bson.M{
						"bsonType":    "long",
						"minimum":     1,
						"description": "Item ID must be a positive integer",
					},
				},
			},
		},
	}

	if slices.Contains(collectionNameList, collectionName) {

		cmd := bson.D{
			{Key: "collMod", Value: collectionName},
			{Key: "validator", Value: validator},
			{Key: "validationLevel", Value: "strict"},
		}

		result := crudDB.RunCommand(ctx, cmd, options.RunCmd())
		if err := result.Err(); err != nil {
			return nil, err
		}

		return conn.GetCollection(collectionName), nil
	}

	collectionOptions := options.CreateCollection()
	collectionOptions.SetValidator(validator)
	collectionOptions.SetValidationLevel("strict")

	err = crudDB.CreateCollection(ctx, collectionName, collectionOptions)
	if err != nil {
		return nil, err
	}

	return conn.GetCollection(collectionName), nil
}

func (m *Collection[T]) createIndexes(ctx context.Context, coll *mongo.Collection) error {

	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return err
	}

	var indexes []bson.M
	err = cur.All(ctx, &indexes)
	if err != nil {
		return err
	}

	itemIDIndex := fmt.Sprintf("%s_1", m.opts.ItemIDKey)
	contains := slices.ContainsFunc(indexes, func(m primitive.M) bool {
		return m["name"] == itemIDIndex
	})

	if contains {
		return nil
	}

	indexModelOptions := options.Index().SetName(itemIDIndex).SetUnique(true)
	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: m.opts.ItemIDKey, Value: 1},
		},
		Options: indexModelOptions,
	}

	_, err = coll.Indexes().CreateOne(ctx, indexModel)
	return err
}

func (m *Collection[T]) nextID(ctx context.Context) (int64, error) {

	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	result := m.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: m.opts.Name}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}},
		opts,
	)

	if err := result.Decode(&counter); err != nil {
		return 0, err
	}

	return counter.Seq, nil
}

func (m *Collection[T]) Insert(ctx context.Context, item T) (T, error) {

	if item.GetID() == 0 {

		setter, ok := any(item).(objects.IDSetter[T])
		if !ok {
			return item, fmt.Errorf("%T cannot be assigned a generated ID", item)
		}

		itemID, err := m.nextID(ctx)
		if err != nil {
			return item, err
		}

		item = setter.WithID(itemID)
	}

	_, err := m.Coll.InsertOne(ctx, item)
	if err != nil {

		if mongo.IsDuplicateKeyError(err) {
			return item, serverError.DuplicatedObjectIDError.New(item.GetID())
		}

		return item, err
	}

	return item, nil
}

func (m *Collection[T]) GetByID(ctx context.Context, itemID int64) (item T, err error) {

	result := m.Coll.FindOne(ctx, bson.D{{Key: m.opts.ItemIDKey, Value: itemID}})

	err = result.Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = serverError.ObjectIDNotFoundError.New(itemID)
		return
	}

	return
}

func (m *Collection[T]) Search(ctx context.Context, q ListQuery) (paginationData PaginationData[T], paginateErr error) {

	if paginateErr = q.Validate(); paginateErr != nil {
		return
	}

	var builder = NewSearchPipelineBuilder()
	builder.Skip(q.Offset())
	builder.Limit(q.PageSize)

	sortData := []SortData{{Key: m.opts.ItemIDKey, SortBy: SortASC}}
	if q.SortKey != "" {

		if !slices.Contains(m.opts.SortFields, q.SortKey) {
			paginateErr = serverError.SortKeyInvalidError.New(q.SortKey)
			return
		}

		direction := q.SortDirection
		if direction == "" {
			direction = SortASC
		}

		sortData = append([]SortData{{Key: q.SortKey, SortBy: direction}}, sortData...)
	}

	builder.SortedBy(sortData)

	if term := q.Term(); term != "" && len(m.opts.SearchFields) > 0 {

		var termMatch bson.D
		termMatch, paginateErr = AnyFieldMatchBson(m.opts.SearchFields, term, q.Match)
		if paginateErr != nil {
			return
		}

		builder.MatchBson(termMatch)
	}

	if len(m.opts.Scope) > 0 {
		builder.MatchBson(m.opts.Scope)
	}

	for key, value := range q.Filters {
		if paginateErr = builder.Match(key, FilterValue(value), EqualMatchType); paginateErr != nil {
			return
		}
	}

	var cur *mongo.Cursor
	cur, paginateErr = m.Coll.Aggregate(ctx, builder.BuildPipeline())
	if paginateErr != nil {
		return
	}

	var aggResultList []AggregatedResult[T]
	paginateErr = cur.All(ctx, &aggResultList)
	if paginateErr != nil {
		return
	}

	var aggResult AggregatedResult[T]
	if len(aggResultList) > 0 {
		aggResult = aggResultList[0]
	}

	paginationData = PaginationData[T]{
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: TotalPages(aggResult.Total, q.PageSize),
		Count:      aggResult.Total,
		Data:       aggResult.Data,
	}

	return
}

func (m *Collection[T]) Update(ctx context.Context, item T) error {

	filter := EqualMatchBson(m.opts.ItemIDKey, item.GetID())

	b, err := bson.Marshal(item)
	if err != nil {
		return err
	}

	var parsedBson bson.D
	err = bson.Unmarshal(b, &parsedBson)
	if err != nil {
		return err
	}

	var updateBson bson.D
	for _, keyValue := range parsedBson {

		if keyValue.Key != m.opts.ItemIDKey {
			updateBson = append(updateBson, keyValue)
		}
	}

	result := m.Coll.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: updateBson}})
	if err := result.Err(); err != nil {

		if errors.Is(err, mongo.ErrNoDocuments) {
			return serverError.ObjectIDNotFoundError.New(item.GetID())
		}

		return err
	}

	return nil
}

func (m *Collection[T]) Delete(ctx context.Context, itemID int64) error {

	filter := bson.D{{Key: m.opts.ItemIDKey, Value: itemID}}

	result := m.Coll.FindOneAndDelete(ctx, filter)
	if err := result.Err(); err != nil {

		if errors.Is(err, mongo.ErrNoDocuments) {
			return serverError.ObjectIDNotFoundError.New(itemID)
		}

		return err
	}

	return nil
}

func (m *Collection[T]) SetStatus(ctx context.Context, itemID int64, status int) error {

	if m.opts.StatusKey == "" {
		return fmt.Errorf("collection %s has no status field", m.opts.Name)
	}

	filter := bson.D{{Key: m.opts.ItemIDKey, Value: itemID}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: m.opts.StatusKey, Value: status}}}}

	result, err := m.Coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return serverError.ObjectIDNotFoundError.New(itemID)
	}

	return nil
}
