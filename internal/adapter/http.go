package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-posts-api/internal/utils"
	"github.com/MKhiriev/go-posts-api/models"
)

const (
	userPath = "/api/v1/user"
	postPath = "/api/v1/post"
)

type httpAPIClient struct {
	client *utils.HTTPClient
}

// NewHTTPAPIClient returns an [APIClient] bound to address. An address
// without a scheme is taken as plain HTTP. A zero timeout keeps the
// client's default.
func NewHTTPAPIClient(address string, timeout time.Duration) (APIClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid API address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &httpAPIClient{client: client}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAPIClient) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}

func (h *httpAPIClient) SignUp(ctx context.Context, credentials models.Credentials) (models.CurrentUser, error) {
	return h.authenticate(ctx, "/signup", credentials)
}

func (h *httpAPIClient) SignIn(ctx context.Context, credentials models.Credentials) (models.CurrentUser, error) {
	return h.authenticate(ctx, "/signin", credentials)
}

func (h *httpAPIClient) authenticate(ctx context.Context, path string, credentials models.Credentials) (models.CurrentUser, error) {
	var user models.CurrentUser

	resp, err := h.request(ctx).
		SetBody(credentials).
		SetResult(&user).
		Post(userPath + path)
	if err != nil {
		return models.CurrentUser{}, fmt.Errorf("%s request: %w", strings.TrimPrefix(path, "/"), err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CurrentUser{}, err
	}

	return user, nil
}

func (h *httpAPIClient) SignOut(ctx context.Context) error {
	resp, err := h.request(ctx).Post(userPath + "/signout")
	if err != nil {
		return fmt.Errorf("signout request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpAPIClient) CurrentUser(ctx context.Context) (*models.CurrentUser, error) {
	var body models.CurrentUserResponse

	resp, err := h.request(ctx).SetResult(&body).Get(userPath + "/currentuser")
	if err != nil {
		return nil, fmt.Errorf("current user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return body.CurrentUser, nil
}

func (h *httpAPIClient) CreatePost(ctx context.Context, req models.CreatePostRequest) (models.Post, error) {
	var post models.Post

	resp, err := h.request(ctx).SetBody(req).SetResult(&post).Post(postPath)
	if err != nil {
		return models.Post{}, fmt.Errorf("create post request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Post{}, err
	}

	return post, nil
}

func (h *httpAPIClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post

	resp, err := h.request(ctx).SetResult(&posts).Get(postPath)
	if err != nil {
		return nil, fmt.Errorf("list posts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return posts, nil
}

func (h *httpAPIClient) GetPost(ctx context.Context, id int64) (models.Post, error) {
	var post models.Post

	resp, err := h.request(ctx).SetResult(&post).Get(postURL(id))
	if err != nil {
		return models.Post{}, fmt.Errorf("get post request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Post{}, err
	}

	return post, nil
}

func (h *httpAPIClient) UpdatePost(ctx context.Context, id int64, req models.UpdatePostRequest) (models.Post, error) {
	var post models.Post

	resp, err := h.request(ctx).SetBody(req).SetResult(&post).Put(postURL(id))
	if err != nil {
		return models.Post{}, fmt.Errorf("update post request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Post{}, err
	}

	return post, nil
}

func (h *httpAPIClient) DeletePost(ctx context.Context, id int64) error {
	resp, err := h.request(ctx).Delete(postURL(id))
	if err != nil {
		return fmt.Errorf("delete post request: %w", err)
	}
	return mapHTTPError(resp)
}

func postURL(id int64) string {
	return postPath + "/" + strconv.FormatInt(id, 10)
}
