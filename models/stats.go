package models

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/supakorn-kn/peponi-admin/mongodb"
	"github.com/supakorn-kn/peponi-admin/objects"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// StoreStats computes the dashboard totals from the MongoDB collections of the records.
type StoreStats struct {
	products *mongo.Collection
	users    *mongo.Collection
	blogs    *mongo.Collection
	orders   *mongo.Collection
}

func NewStoreStats(conn *mongodb.MongoDBConn) *StoreStats {

	return &StoreStats{
		products: conn.GetCollection("products"),
		users:    conn.GetCollection("users"),
		blogs:    conn.GetCollection("blogs"),
		orders:   conn.GetCollection("orders"),
	}
}

func (s *StoreStats) Stats(ctx context.Context) (objects.Stats, error) {

	stats := objects.Stats{Revenue: decimal.Zero}

	g, ctx := errgroup.WithContext(ctx)

	count := func(coll *mongo.Collection, total *int64) func() error {

		return func() (err error) {
			*total, err = coll.CountDocuments(ctx, bson.D{})
			return
		}
	}

	g.Go(count(s.products, &stats.Products))
	g.Go(count(s.users, &stats.Users))
	g.Go(count(s.blogs, &stats.Blogs))

	g.Go(func() error {

		pipeline := mongo.Pipeline{
			bson.D{{Key: "$group", Value: bson.D{
				{Key: "_id", Value: nil},
				{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$Total"}}},
			}}},
		}

		cur, err := s.orders.Aggregate(ctx, pipeline)
		if err != nil {
			return err
		}

		var totals []struct {
			Revenue decimal.Decimal `bson:"revenue"`
		}

		if err := cur.All(ctx, &totals); err != nil {
			return err
		}

		if len(totals) > 0 {
			stats.Revenue = totals[0].Revenue
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return objects.Stats{}, err
	}

	return stats, nil
}
