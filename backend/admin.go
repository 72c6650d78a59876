package backend

import (
	"context"
	"net/http"

	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/tidwall/gjson"
)

type Admin struct {
	AdminID  int64  `json:"AdminID"`
	UserName string `json:"UserName"`
	Email    string `json:"email,omitempty"`
}

type LoginResult struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {

	var result LoginResult

	body := map[string]string{"username": username, "password": password}

	resp, err := c.do(c.request(ctx).SetBody(body), http.MethodPost, "admin/login")
	if err != nil {

		if resp != nil && resp.StatusCode() == http.StatusUnauthorized {
			return result, errors.UnauthorizedError.New()
		}

		return result, err
	}

	token := gjson.GetBytes(resp.Body(), "token")
	if token.Type != gjson.String || token.Str == "" {
		return result, errors.BackendResponseInvalidError.New("admin/login", "token is missing")
	}

	result.Token = token.Str
	result.Admin = Admin{
		UserName: gjson.GetBytes(resp.Body(), "username").Str,
		Email:    gjson.GetBytes(resp.Body(), "email").Str,
	}

	return result, nil
}

// Verify asks the backend whether token still belongs to a signed in admin.
func (c *Client) Verify(ctx context.Context, token string) (Admin, error) {

	var admin Admin

	resp, err := c.do(c.request(WithToken(ctx, token)), http.MethodGet, "admin/verify")
	if err != nil {

		if resp != nil && (resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden) {
			return admin, errors.UnauthorizedError.New()
		}

		return admin, err
	}

	user := gjson.GetBytes(resp.Body(), "user")
	if !user.IsObject() {
		return admin, errors.UnauthorizedError.New()
	}

	admin = Admin{
		AdminID:  user.Get("AdminID").Int(),
		UserName: user.Get("UserName").Str,
		Email:    user.Get("email").Str,
	}

	return admin, nil
}
