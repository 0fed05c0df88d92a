package database

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/Gravitalia/forum/model"
)

// ErrNotFound is returned when the requested post or user does not exist
var ErrNotFound = errors.New("not found")

// Store is the persistence layer behind the router
type Store interface {
	// ListPosts returns the requested page, newest first, and the
	// number of posts matching the filter
	ListPosts(ctx context.Context, query model.PostQuery) ([]model.Post, int, error)
	GetPost(ctx context.Context, id string) (model.Post, error)
	// CreatePost assigns ID, timestamp and counters of the post
	CreatePost(ctx context.Context, post model.Post) (model.Post, error)
	// LikePost adds delta to the likes of a post, never going below zero
	LikePost(ctx context.Context, id string, delta int64) (int64, error)
	AddReply(ctx context.Context, postID string, reply model.Reply) (model.Reply, error)
	DeletePost(ctx context.Context, id string) error
	Stats(ctx context.Context) (model.Stats, error)

	// LoginUser finds a user by username, case insensitive,
	// and creates it if it does not exist
	LoginUser(ctx context.Context, username string) (model.User, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	SetPreferredLanguage(ctx context.Context, id string, language string) (model.User, error)

	Close(ctx context.Context) error
}

// recentActivity is the number of posts listed in stats
const recentActivity = 5

// DefaultLanguage is used when a post, reply or user has no language
const DefaultLanguage = "en"

// emailOf derives the demo email of a username
func emailOf(username string) string {
	return strings.ToLower(username) + "@example.com"
}

// Page bounds used by ListPosts
const (
	DefaultLimit = 10
	MaxLimit     = 50
	// MaxPage keeps (page-1)*limit within an int
	MaxPage = math.MaxInt / MaxLimit
)

// NormalizeQuery clamps page and limit into their allowed range
func NormalizeQuery(query model.PostQuery) model.PostQuery {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Page > MaxPage {
		query.Page = MaxPage
	}
	if query.Limit < 1 {
		query.Limit = DefaultLimit
	}
	if query.Limit > MaxLimit {
		query.Limit = MaxLimit
	}
	return query
}

// Paginate describes the page of query among total posts
func Paginate(query model.PostQuery, total int) model.Pagination {
	query = NormalizeQuery(query)
	start, end := (query.Page-1)*query.Limit, query.Page*query.Limit

	return model.Pagination{
		CurrentPage: query.Page,
		TotalPages:  (total + query.Limit - 1) / query.Limit,
		TotalPosts:  total,
		HasNext:     end < total,
		HasPrev:     start > 0,
	}
}

// bounds returns the slice indexes of the page, within [0, total]
func bounds(query model.PostQuery, total int) (int, int) {
	query = NormalizeQuery(query)

	start := (query.Page - 1) * query.Limit
	if start > total {
		start = total
	}
	end := start + query.Limit
	if end > total {
		end = total
	}

	return start, end
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Graph)(nil)
)
