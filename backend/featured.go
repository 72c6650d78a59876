package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/tidwall/gjson"
)

// FeaturedProducts lists the products currently featured in group.
func (c *Client) FeaturedProducts(ctx context.Context, group int) ([]objects.FeaturedProduct, error) {
	return c.featureList(ctx, "feature/features/"+strconv.Itoa(group))
}

// FeatureCandidates lists the products that may be featured in group, including the ones already featured.
func (c *Client) FeatureCandidates(ctx context.Context, group int) ([]objects.FeaturedProduct, error) {
	return c.featureList(ctx, "feature/"+strconv.Itoa(group))
}

func (c *Client) AddFeatured(ctx context.Context, group int, productID int64) error {

	body := map[string]any{"FeatureName": group, "ProductID": productID}

	_, err := c.do(c.request(ctx).SetBody(body), http.MethodPost, "feature")
	return err
}

func (c *Client) RemoveFeatured(ctx context.Context, featuredID int64) error {

	_, err := c.do(c.request(ctx), http.MethodDelete, itemPath("feature", featuredID))
	if errors.HasCode(err, errors.ObjectIDNotFoundErrorCode) {
		return errors.ObjectIDNotFoundError.New(featuredID)
	}

	return err
}

func (c *Client) featureList(ctx context.Context, path string) ([]objects.FeaturedProduct, error) {

	resp, err := c.do(c.request(ctx), http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	items := gjson.GetBytes(resp.Body(), "data.0")
	if !items.Exists() || items.Type == gjson.Null {
		return []objects.FeaturedProduct{}, nil
	}

	if !items.IsArray() {
		return nil, errors.BackendResponseInvalidError.New(path, "products are not an array")
	}

	products := make([]objects.FeaturedProduct, 0, len(items.Array()))
	if err := json.Unmarshal([]byte(items.Raw), &products); err != nil {
		return nil, errors.BackendResponseInvalidError.New(path, err.Error())
	}

	return products, nil
}
