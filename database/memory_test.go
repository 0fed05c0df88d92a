package database

import (
	"context"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/Gravitalia/forum/model"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func TestListPostsNewestFirst(t *testing.T) {
	m := NewMemory()

	posts, total, err := m.ListPosts(context.Background(), model.PostQuery{})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, []string{"3", "2", "1"}, ids(posts))
}

func TestListPostsLanguageFilter(t *testing.T) {
	m := NewMemory()

	posts, total, err := m.ListPosts(context.Background(), model.PostQuery{Language: "fr"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Pierre", posts[0].Author)

	posts, total, err = m.ListPosts(context.Background(), model.PostQuery{Language: "ja"})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, posts)
}

func TestListPostsPagination(t *testing.T) {
	m := NewMemory()

	posts, total, err := m.ListPosts(context.Background(), model.PostQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, []string{"1"}, ids(posts))

	posts, _, err = m.ListPosts(context.Background(), model.PostQuery{Page: 9, Limit: 2})
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestCreatePost(t *testing.T) {
	m := NewMemory()
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	m.now = func() time.Time { return now }

	author := gofakeit.Username()
	post, err := m.CreatePost(context.Background(), model.Post{Title: "Hi", Content: "Hello", Author: author})
	require.NoError(t, err)
	require.Equal(t, "4", post.Id)
	require.Equal(t, "en", post.Language)
	require.Equal(t, "2025-03-04T05:06:07.000Z", post.Timestamp)
	require.Zero(t, post.Likes)
	require.NotNil(t, post.Replies)
	require.Empty(t, post.Replies)

	next, err := m.CreatePost(context.Background(), model.Post{Title: "Again", Content: "Hello", Author: author, Language: "de"})
	require.NoError(t, err)
	require.Equal(t, "5", next.Id)
	require.Equal(t, "de", next.Language)

	posts, _, err := m.ListPosts(context.Background(), model.PostQuery{})
	require.NoError(t, err)
	require.Equal(t, []string{"5", "4", "3", "2", "1"}, ids(posts))
}

func TestGetPostNotFound(t *testing.T) {
	m := NewMemory()

	_, err := m.GetPost(context.Background(), "404")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetPostReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.AddReply(ctx, "1", model.Reply{Content: "first", Author: "a"})
	require.NoError(t, err)

	post, err := m.GetPost(ctx, "1")
	require.NoError(t, err)
	post.Replies[0].Content = "changed"

	again, err := m.GetPost(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "first", again.Replies[0].Content)
}

func TestLikePostClampsAtZero(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	post, err := m.CreatePost(ctx, model.Post{Title: "t", Content: "c", Author: "a"})
	require.NoError(t, err)

	likes, err := m.LikePost(ctx, post.Id, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), likes)

	for i := 0; i < 3; i++ {
		likes, err = m.LikePost(ctx, post.Id, -1)
		require.NoError(t, err)
	}
	require.Zero(t, likes)

	_, err = m.LikePost(ctx, "missing", 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddReply(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	first, err := m.AddReply(ctx, "2", model.Reply{Content: "Merci", Author: gofakeit.Username(), Language: "fr"})
	require.NoError(t, err)
	second, err := m.AddReply(ctx, "2", model.Reply{Content: "Thanks", Author: gofakeit.Username()})
	require.NoError(t, err)

	require.NotEqual(t, first.Id, second.Id)
	require.Equal(t, "en", second.Language)
	_, err = strconv.ParseInt(first.Id, 10, 64)
	require.NoError(t, err)

	post, err := m.GetPost(ctx, "2")
	require.NoError(t, err)
	require.Len(t, post.Replies, 2)
	require.Equal(t, "Merci", post.Replies[0].Content)
	require.Equal(t, "Thanks", post.Replies[1].Content)

	_, err = m.AddReply(ctx, "missing", model.Reply{Content: "x", Author: "y"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePost(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.DeletePost(ctx, "2"))
	require.ErrorIs(t, m.DeletePost(ctx, "2"), ErrNotFound)

	_, total, err := m.ListPosts(ctx, model.PostQuery{})
	require.NoError(t, err)
	require.Equal(t, 2, total)
}

func TestStats(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.AddReply(ctx, "1", model.Reply{Content: "c", Author: "a"})
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err = m.CreatePost(ctx, model.Post{Title: gofakeit.Sentence(3), Content: "c", Author: "a", Language: "en"})
		require.NoError(t, err)
	}

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 7, stats.TotalPosts)
	require.Equal(t, 1, stats.TotalReplies)
	require.Equal(t, int64(35), stats.TotalLikes)
	require.Equal(t, 3, stats.LanguagesUsed)
	require.Len(t, stats.RecentActivity, 5)
	require.Equal(t, "7", stats.RecentActivity[0].Id)
	require.Equal(t, "1", stats.RecentActivity[4].Id)
}

func TestLoginUser(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	admin, err := m.LoginUser(ctx, "ADMIN")
	require.NoError(t, err)
	require.Equal(t, "1", admin.Id)

	username := "  Zoé  "
	user, err := m.LoginUser(ctx, username)
	require.NoError(t, err)
	require.Equal(t, "4", user.Id)
	require.Equal(t, "Zoé", user.Username)
	require.Equal(t, "zoé@example.com", user.Email)
	require.Equal(t, "en", user.PreferredLanguage)

	again, err := m.LoginUser(ctx, "zoé")
	require.NoError(t, err)
	require.Equal(t, user, again)

	users, err := m.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 4)
}

func TestSetPreferredLanguage(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	user, err := m.SetPreferredLanguage(ctx, "3", "ja")
	require.NoError(t, err)
	require.Equal(t, "ja", user.PreferredLanguage)

	user, err = m.GetUser(ctx, "3")
	require.NoError(t, err)
	require.Equal(t, "ja", user.PreferredLanguage)

	_, err = m.SetPreferredLanguage(ctx, "99", "ja")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = m.GetUser(ctx, "99")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPaginate(t *testing.T) {
	p := Paginate(model.PostQuery{Page: 1, Limit: 10}, 3)
	require.Equal(t, model.Pagination{CurrentPage: 1, TotalPages: 1, TotalPosts: 3}, p)

	p = Paginate(model.PostQuery{Page: 2, Limit: 2}, 5)
	require.Equal(t, model.Pagination{CurrentPage: 2, TotalPages: 3, TotalPosts: 5, HasNext: true, HasPrev: true}, p)

	p = Paginate(model.PostQuery{Page: 0, Limit: 500}, 0)
	require.Equal(t, model.Pagination{CurrentPage: 1, TotalPages: 0, TotalPosts: 0}, p)
}

func ids(posts []model.Post) []string {
	out := make([]string, 0, len(posts))
	for _, post := range posts {
		out = append(out, post.Id)
	}
	return out
}

func TestListPostsHugePage(t *testing.T) {
	m := NewMemory()
	query := model.PostQuery{Page: math.MaxInt, Limit: MaxLimit}

	posts, total, err := m.ListPosts(context.Background(), query)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Empty(t, posts)

	p := Paginate(query, total)
	require.Equal(t, MaxPage, p.CurrentPage)
	require.Equal(t, 1, p.TotalPages)
	require.False(t, p.HasNext)
	require.True(t, p.HasPrev)

	require.Equal(t, MaxPage, NormalizeQuery(model.PostQuery{Page: 184467440737095517}).Page)
}
