package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/tidwall/gjson"
)

// Profile returns the account of the admin with adminID.
func (c *Client) Profile(ctx context.Context, adminID int64) (Admin, error) {

	path := "admin/" + strconv.FormatInt(adminID, 10)

	resp, err := c.do(c.request(ctx), http.MethodGet, path)
	if err != nil {

		if errors.HasCode(err, errors.ObjectIDNotFoundErrorCode) {
			return Admin{}, errors.ObjectIDNotFoundError.New(adminID)
		}

		return Admin{}, err
	}

	account := gjson.GetBytes(resp.Body(), "result.0")
	if !account.IsObject() {
		return Admin{}, errors.BackendResponseInvalidError.New(path, "account is missing")
	}

	return Admin{
		AdminID:  adminID,
		UserName: account.Get("username").Str,
		Email:    account.Get("email").Str,
	}, nil
}

// ChangePassword replaces the password of change.AdminID. A rejected current password is a validation failure.
func (c *Client) ChangePassword(ctx context.Context, change objects.PasswordChange) error {

	path := "admin/change-password/" + strconv.FormatInt(change.AdminID, 10)

	resp, err := c.do(c.request(ctx).SetBody(change), http.MethodPut, path)
	if err == nil {
		return nil
	}

	if resp != nil && (resp.StatusCode() == http.StatusBadRequest || resp.StatusCode() == http.StatusUnauthorized) {

		message := extractMessage(resp.Body())
		if message == "" {
			message = "current password is incorrect"
		}

		return errors.ValidationFailedError.New(message)
	}

	if errors.HasCode(err, errors.ObjectIDNotFoundErrorCode) {
		return errors.ObjectIDNotFoundError.New(change.AdminID)
	}

	return err
}

// Stats reads the totals of the dashboard home page.
func (c *Client) Stats(ctx context.Context) (objects.Stats, error) {

	var stats objects.Stats

	resp, err := c.do(c.request(ctx), http.MethodGet, "dash")
	if err != nil {
		return stats, err
	}

	totals := gjson.GetBytes(resp.Body(), "result.0")
	if !totals.IsObject() {
		return stats, errors.BackendResponseInvalidError.New("dash", "totals are missing")
	}

	stats = objects.Stats{
		Products: totals.Get("product").Int(),
		Users:    totals.Get("user").Int(),
		Blogs:    totals.Get("blog").Int(),
		Revenue:  decimal.Zero,
	}

	if revenue := totals.Get("revenue"); revenue.Exists() && revenue.Type != gjson.Null {

		stats.Revenue, err = decimal.NewFromString(revenue.String())
		if err != nil {
			return stats, errors.BackendResponseInvalidError.New("dash", err.Error())
		}
	}

	return stats, nil
}
