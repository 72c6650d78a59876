package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/supakorn-kn/peponi-admin/catalog"
	"github.com/supakorn-kn/peponi-admin/env"
	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/supakorn-kn/peponi-admin/mongodb"
	"github.com/supakorn-kn/peponi-admin/objects"
	"golang.org/x/sync/errgroup"
)

var orderStatuses = []string{"pending", "processing", "shipped", "delivered", "cancelled"}

func SeedCmd() *cobra.Command {

	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the MongoDB collections with fake records",
		RunE: func(cmd *cobra.Command, _ []string) error {

			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			config, err := env.GetEnv()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			slog.SetDefault(newLogger(config.Log))

			conn, err := mongodb.InitConnection(cmd.Context(), config.MongoDB)
			if err != nil {
				return fmt.Errorf("connect MongoDB: %w", err)
			}

			defer conn.Disconnect(context.Background())

			return seed(cmd.Context(), conn, count)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 25, "records per collection")
	return cmd
}

func seed(ctx context.Context, conn *mongodb.MongoDBConn, count int) error {

	// Products reference categories so those go first.
	categories, err := seedCollection(ctx, conn, catalog.Categories, count, func(int) objects.Category {
		return fakeCategory(0, "")
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {

		_, err := seedCollection(gctx, conn, catalog.SubCategories, count, func(i int) objects.Category {

			parent := categories[i%len(categories)]
			return fakeCategory(parent.CategoryID, parent.CategoryName)
		})
		return err
	})

	g.Go(func() error {

		_, err := seedCollection(gctx, conn, catalog.Products, count, func(i int) objects.Product {
			return fakeProduct(categories[i%len(categories)])
		})
		return err
	})

	g.Go(func() error {
		_, err := seedCollection(gctx, conn, catalog.Attributes, count, func(int) objects.Attribute { return fakeAttribute() })
		return err
	})

	g.Go(func() error {
		_, err := seedCollection(gctx, conn, catalog.Blogs, count, func(int) objects.Blog { return fakeBlog() })
		return err
	})

	g.Go(func() error {
		_, err := seedCollection(gctx, conn, catalog.Banners, count, func(int) objects.Banner { return fakeBanner() })
		return err
	})

	g.Go(func() error {
		_, err := seedCollection(gctx, conn, catalog.FAQs, count, func(int) objects.FAQ { return fakeFAQ() })
		return err
	})

	g.Go(func() error {
		_, err := seedCollection(gctx, conn, catalog.Newsletters, count, func(int) objects.Newsletter { return fakeNewsletter() })
		return err
	})

	g.Go(func() error {
		_, err := seedCollection(gctx, conn, catalog.Contacts, count, func(int) objects.Contact { return fakeContact() })
		return err
	})

	g.Go(func() error {
		_, err := seedCollection(gctx, conn, catalog.Reviews, count, func(int) objects.Review { return fakeReview() })
		return err
	})

	g.Go(func() error {
		_, err := seedCollection(gctx, conn, catalog.Orders, count, func(int) objects.Order { return fakeOrder() })
		return err
	})

	g.Go(func() error {
		_, err := seedCollection(gctx, conn, catalog.Users, count, func(int) objects.User { return fakeUser() })
		return err
	})

	return g.Wait()
}

func seedCollection[R objects.Record](ctx context.Context, conn *mongodb.MongoDBConn, entity catalog.Entity[R], count int, fake func(i int) R) ([]R, error) {

	collection, err := models.NewCollection[R](ctx, conn, entity.Collection)
	if err != nil {
		return nil, fmt.Errorf("prepare %s collection: %w", entity.Name, err)
	}

	inserted := make([]R, 0, count)
	for i := 0; i < count; i++ {

		item, err := collection.Insert(ctx, fake(i))
		if err != nil {
			return inserted, fmt.Errorf("insert %s: %w", entity.Noun, err)
		}

		inserted = append(inserted, item)
	}

	slog.Info("seeded", "entity", entity.Name, "count", len(inserted))
	return inserted, nil
}

func fakeStatus() int {
	return gofakeit.RandomInt([]int{objects.StatusInactive, objects.StatusActive})
}

func fakeCreatedAt() time.Time {
	return gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()).UTC().Truncate(time.Millisecond)
}

func fakeCategory(parentID int64, parentName string) objects.Category {

	return objects.Category{
		CategoryName:       gofakeit.ProductCategory() + " " + gofakeit.Word(),
		Image:              gofakeit.URL(),
		Status:             fakeStatus(),
		ParentCategoryID:   parentID,
		ParentCategoryName: parentName,
	}.Normalize()
}

func fakeProduct(category objects.Category) objects.Product {

	return objects.Product{
		ProductName:        gofakeit.ProductName(),
		CategoryID:         category.CategoryID,
		CategoryName:       category.CategoryName,
		Image:              gofakeit.URL(),
		Description:        gofakeit.ProductDescription(),
		ProductPrice:       decimal.NewFromFloat(gofakeit.Price(5, 500)).Round(2),
		DiscountPercentage: float64(gofakeit.Number(0, 50)),
		Stock:              gofakeit.Number(0, 300),
		Status:             fakeStatus(),
		CreatedAt:          fakeCreatedAt(),
	}.Normalize()
}

func fakeAttribute() objects.Attribute {

	return objects.Attribute{
		Name:   gofakeit.ProductFeature(),
		Values: []string{gofakeit.Color(), gofakeit.Color(), gofakeit.Color()},
	}.Normalize()
}

func fakeBlog() objects.Blog {

	return objects.Blog{
		Title:     gofakeit.Sentence(6),
		Image:     gofakeit.URL(),
		Content:   gofakeit.Paragraph(3, 4, 12, " "),
		Status:    fakeStatus(),
		CreatedAt: fakeCreatedAt(),
	}.Normalize()
}

func fakeBanner() objects.Banner {

	return objects.Banner{
		BannerTitle: gofakeit.HipsterSentence(4),
		Image:       gofakeit.URL(),
		Link:        gofakeit.URL(),
		Status:      fakeStatus(),
	}
}

func fakeFAQ() objects.FAQ {

	return objects.FAQ{
		Question: gofakeit.Question(),
		Answer:   gofakeit.Sentence(12),
	}
}

func fakeNewsletter() objects.Newsletter {

	return objects.Newsletter{
		Email:     gofakeit.Email(),
		CreatedAt: fakeCreatedAt(),
	}
}

func fakeContact() objects.Contact {

	return objects.Contact{
		FullName:  gofakeit.Name(),
		Email:     gofakeit.Email(),
		Phone:     gofakeit.Phone(),
		Message:   gofakeit.Sentence(20),
		CreatedAt: fakeCreatedAt(),
	}
}

func fakeReview() objects.Review {

	return objects.Review{
		ProductName:  gofakeit.ProductName(),
		UserName:     gofakeit.Username(),
		EmailAddress: gofakeit.Email(),
		Rating:       gofakeit.Number(1, 5),
		ReviewText:   gofakeit.Sentence(15),
		ReviewDate:   fakeCreatedAt(),
		Status:       fakeStatus(),
	}
}

func fakeOrder() objects.Order {

	return objects.Order{
		CustomerName: gofakeit.Name(),
		Email:        gofakeit.Email(),
		Total:        decimal.NewFromFloat(gofakeit.Price(10, 2000)).Round(2),
		OrderStatus:  gofakeit.RandomString(orderStatuses),
		CreatedAt:    fakeCreatedAt(),
	}
}

func fakeUser() objects.User {

	return objects.User{
		Name:      gofakeit.Name(),
		Email:     gofakeit.Email(),
		Status:    gofakeit.RandomInt([]int{objects.StatusInactive, objects.StatusActive, objects.UserBlocked}),
		CreatedAt: fakeCreatedAt(),
	}
}
