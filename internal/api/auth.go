package api

import (
	"bytes"
	"context"
	"mime/multipart"

	"github.com/dkolesn/swapmart/internal/errs"
	"github.com/dkolesn/swapmart/internal/model"
)

type authResponse struct {
	User        model.User `json:"user"`
	AccessToken string     `json:"access_token"`
}

// Login exchanges credentials for a session. The token is returned to the
// caller, not persisted; that is the credential store's decision.
func (c *Client) Login(ctx context.Context, login, password string) (model.Session, error) {
	var resp authResponse
	err := c.postJSON(ctx, "/auth/login", model.Credentials{Login: login, Password: password}, &resp)
	if err != nil {
		return model.Session{}, err
	}
	if resp.AccessToken == "" {
		return model.Session{}, &model.APIError{Message: "login response missing access token", Err: errs.ErrUnavailable}
	}
	u := resp.User
	return model.Session{Token: resp.AccessToken, User: &u}, nil
}

// Register submits a new profile as a multipart form, optionally including a
// binary profile picture. A successful registration returns a usable session.
func (c *Client) Register(ctx context.Context, reg model.Registration) (model.Session, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range reg.Fields() {
		if err := w.WriteField(k, v); err != nil {
			return model.Session{}, &model.APIError{Message: "encoding form: " + err.Error(), Err: errs.ErrValidation}
		}
	}
	if pic := reg.ProfilePicture; pic != nil {
		fw, err := w.CreateFormFile("profile_picture", pic.Name)
		if err != nil {
			return model.Session{}, &model.APIError{Message: "encoding form: " + err.Error(), Err: errs.ErrValidation}
		}
		if _, err := fw.Write(pic.Data); err != nil {
			return model.Session{}, &model.APIError{Message: "encoding form: " + err.Error(), Err: errs.ErrValidation}
		}
	}
	if err := w.Close(); err != nil {
		return model.Session{}, &model.APIError{Message: "encoding form: " + err.Error(), Err: errs.ErrValidation}
	}

	var resp authResponse
	if err := c.do(ctx, "POST", "/auth/register", &buf, w.FormDataContentType(), &resp); err != nil {
		return model.Session{}, err
	}
	if resp.AccessToken == "" {
		return model.Session{}, &model.APIError{Message: "register response missing access token", Err: errs.ErrUnavailable}
	}
	u := resp.User
	return model.Session{Token: resp.AccessToken, User: &u}, nil
}

// Logout notifies the server that the session ended. The call is bearer
// authenticated; local teardown is the credential store's job regardless of
// the outcome here.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "POST", "/logout", nil, "", nil)
}
