package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gravitalia/forum/model"
	"github.com/pkg/errors"
)

// DefaultURL is the forum API used when none is configured
const DefaultURL = "http://localhost:3001"

// APIError is a non 2xx response of the forum API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Client calls the forum API. UserID and Token identify the caller
// once logged in.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	UserID  string
	Token   string
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}

	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) ListPosts(ctx context.Context, query model.PostQuery) (model.PostList, error) {
	values := url.Values{}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Language != "" {
		values.Set("language", query.Language)
	}

	path := "/api/posts/"
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var list model.PostList
	err := c.do(ctx, http.MethodGet, path, nil, &list)
	return list, err
}

func (c *Client) GetPost(ctx context.Context, id string) (model.Post, error) {
	var post model.Post
	err := c.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(id), nil, &post)
	return post, err
}

func (c *Client) CreatePost(ctx context.Context, body model.PostBody) (model.Post, error) {
	var post model.Post
	err := c.do(ctx, http.MethodPost, "/api/posts/", body, &post)
	return post, err
}

// Like sends "like" or "unlike" and returns the new count
func (c *Client) Like(ctx context.Context, id string, action string) (int64, error) {
	var likes model.Likes
	err := c.do(ctx, http.MethodPut, "/api/posts/"+url.PathEscape(id)+"/like", model.LikeBody{Action: action}, &likes)
	return likes.Likes, err
}

func (c *Client) Reply(ctx context.Context, id string, body model.ReplyBody) (model.Reply, error) {
	var reply model.Reply
	err := c.do(ctx, http.MethodPost, "/api/posts/"+url.PathEscape(id)+"/reply", body, &reply)
	return reply, err
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Stats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	err := c.do(ctx, http.MethodGet, "/api/posts/stats/summary", nil, &stats)
	return stats, err
}

func (c *Client) Translate(ctx context.Context, body model.TranslationBody) (model.Translation, error) {
	var translation model.Translation
	err := c.do(ctx, http.MethodPost, "/api/translate/", body, &translation)
	return translation, err
}

func (c *Client) Languages(ctx context.Context) (map[string]string, error) {
	var languages map[string]string
	err := c.do(ctx, http.MethodGet, "/api/translate/languages", nil, &languages)
	return languages, err
}

// Login identifies the client as username for the next calls
func (c *Client) Login(ctx context.Context, username string) (model.Login, error) {
	var login model.Login
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", model.LoginBody{Username: username}, &login); err != nil {
		return model.Login{}, err
	}

	c.UserID = login.User.Id
	c.Token = login.Token

	return login, nil
}

func (c *Client) Me(ctx context.Context) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user)
	return user, err
}

func (c *Client) SetPreferredLanguage(ctx context.Context, language string) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPut, "/api/auth/preferences", model.PreferencesBody{PreferredLanguage: language}, &user)
	return user, err
}

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := c.do(ctx, http.MethodGet, "/api/users/", nil, &users)
	return users, err
}

func (c *Client) GetUser(ctx context.Context, id string) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, &user)
	return user, err
}

func (c *Client) Health(ctx context.Context) (model.Health, error) {
	var health model.Health
	err := c.do(ctx, http.MethodGet, "/api/health", nil, &health)
	return health, err
}

// do sends body as JSON and decodes the response into out,
// out may be nil
func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "error encoding request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "error creating request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserID != "" {
		req.Header.Set("x-user-id", c.UserID)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Wrap(err, "error sending request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "error reading response")
	}

	if resp.StatusCode >= 400 {
		var res model.RequestError
		if json.Unmarshal(data, &res) != nil || res.Message == "" {
			res.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: res.Message}
	}

	if out == nil {
		return nil
	}

	if err = json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "error decoding response")
	}

	return nil
}
