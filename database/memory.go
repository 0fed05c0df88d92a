package database

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Gravitalia/forum/helpers"
	"github.com/Gravitalia/forum/model"
)

// TimeFormat is how post and reply timestamps are written
const TimeFormat = "2006-01-02T15:04:05.000Z"

// Memory keeps posts and users in process memory,
// everything is lost on restart
type Memory struct {
	mu         sync.RWMutex
	posts      []model.Post
	users      []model.User
	nextPostID int
	nextUserID int
	now        func() time.Time
}

// NewMemory returns a store seeded with the demo posts and users
func NewMemory() *Memory {
	m := &Memory{
		posts: []model.Post{
			{
				Id:        "1",
				Title:     "Welcome to the Multilingual Forum!",
				Content:   "This is a revolutionary platform where people from all over the world can communicate without language barriers. Post in your native language and read in your preferred language!",
				Author:    "Admin",
				Language:  "en",
				Timestamp: "2024-01-01T12:00:00Z",
				Likes:     15,
				Replies:   []model.Reply{},
			},
			{
				Id:        "2",
				Title:     "Bonjour le monde!",
				Content:   "Je suis très excité de pouvoir communiquer avec des gens du monde entier. Cette technologie va vraiment changer la façon dont nous interagissons en ligne.",
				Author:    "Pierre",
				Language:  "fr",
				Timestamp: "2024-01-02T10:30:00Z",
				Likes:     8,
				Replies:   []model.Reply{},
			},
			{
				Id:        "3",
				Title:     "¡Hola comunidad!",
				Content:   "Estoy impresionado por esta plataforma. Finalmente podemos romper las barreras del idioma y conectar con personas de todo el mundo de manera más efectiva.",
				Author:    "María",
				Language:  "es",
				Timestamp: "2024-01-02T14:15:00Z",
				Likes:     12,
				Replies:   []model.Reply{},
			},
		},
		users: []model.User{
			{Id: "1", Username: "admin", Email: "admin@example.com", PreferredLanguage: "en", JoinDate: "2024-01-01"},
			{Id: "2", Username: "pierre", Email: "pierre@example.com", PreferredLanguage: "fr", JoinDate: "2024-01-02"},
			{Id: "3", Username: "maria", Email: "maria@example.com", PreferredLanguage: "es", JoinDate: "2024-01-02"},
		},
		nextPostID: 4,
		nextUserID: 4,
		now:        time.Now,
	}

	return m
}

// ListPosts filters by language and sorts newest first
func (m *Memory) ListPosts(_ context.Context, query model.PostQuery) ([]model.Post, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filtered := make([]model.Post, 0, len(m.posts))
	for _, post := range m.posts {
		if query.Language == "" || post.Language == query.Language {
			filtered = append(filtered, post)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return parseTime(filtered[i].Timestamp).After(parseTime(filtered[j].Timestamp))
	})

	start, end := bounds(query, len(filtered))
	page := make([]model.Post, 0, end-start)
	for _, post := range filtered[start:end] {
		page = append(page, copyPost(post))
	}

	return page, len(filtered), nil
}

func (m *Memory) GetPost(_ context.Context, id string) (model.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return model.Post{}, ErrNotFound
	}

	return copyPost(m.posts[i]), nil
}

// CreatePost inserts the post at the front of the store
func (m *Memory) CreatePost(_ context.Context, post model.Post) (model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post.Id = strconv.Itoa(m.nextPostID)
	m.nextPostID++
	post.Timestamp = m.now().UTC().Format(TimeFormat)
	post.Likes = 0
	post.Replies = []model.Reply{}
	if post.Language == "" {
		post.Language = DefaultLanguage
	}

	m.posts = append([]model.Post{post}, m.posts...)

	return copyPost(post), nil
}

func (m *Memory) LikePost(_ context.Context, id string, delta int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return 0, ErrNotFound
	}

	m.posts[i].Likes += delta
	if m.posts[i].Likes < 0 {
		m.posts[i].Likes = 0
	}

	return m.posts[i].Likes, nil
}

func (m *Memory) AddReply(_ context.Context, postID string, reply model.Reply) (model.Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(postID)
	if i < 0 {
		return model.Reply{}, ErrNotFound
	}

	reply.Id = helpers.Generate()
	reply.Timestamp = m.now().UTC().Format(TimeFormat)
	reply.Likes = 0
	if reply.Language == "" {
		reply.Language = DefaultLanguage
	}

	m.posts[i].Replies = append(m.posts[i].Replies, reply)

	return reply, nil
}

func (m *Memory) DeletePost(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	m.posts = append(m.posts[:i], m.posts[i+1:]...)

	return nil
}

func (m *Memory) Stats(_ context.Context) (model.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := model.Stats{
		TotalPosts:     len(m.posts),
		RecentActivity: make([]model.Activity, 0, recentActivity),
	}

	languages := make(map[string]struct{})
	for i, post := range m.posts {
		stats.TotalReplies += len(post.Replies)
		stats.TotalLikes += post.Likes
		languages[post.Language] = struct{}{}

		if i < recentActivity {
			stats.RecentActivity = append(stats.RecentActivity, model.Activity{
				Id:        post.Id,
				Title:     post.Title,
				Author:    post.Author,
				Timestamp: post.Timestamp,
			})
		}
	}
	stats.LanguagesUsed = len(languages)

	return stats, nil
}

func (m *Memory) LoginUser(_ context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	username = strings.TrimSpace(username)
	for _, user := range m.users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}

	user := model.User{
		Id:                strconv.Itoa(m.nextUserID),
		Username:          username,
		Email:             emailOf(username),
		PreferredLanguage: DefaultLanguage,
		JoinDate:          m.now().UTC().Format("2006-01-02"),
	}
	m.nextUserID++
	m.users = append(m.users, user)

	return user, nil
}

func (m *Memory) GetUser(_ context.Context, id string) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Id == id {
			return user, nil
		}
	}

	return model.User{}, ErrNotFound
}

func (m *Memory) ListUsers(_ context.Context) ([]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]model.User(nil), m.users...), nil
}

func (m *Memory) SetPreferredLanguage(_ context.Context, id string, language string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.users {
		if m.users[i].Id == id {
			m.users[i].PreferredLanguage = language
			return m.users[i], nil
		}
	}

	return model.User{}, ErrNotFound
}

func (m *Memory) Close(context.Context) error {
	return nil
}

// indexOf must be called with the lock held
func (m *Memory) indexOf(id string) int {
	for i, post := range m.posts {
		if post.Id == id {
			return i
		}
	}
	return -1
}

func copyPost(post model.Post) model.Post {
	replies := make([]model.Reply, len(post.Replies))
	copy(replies, post.Replies)
	post.Replies = replies
	return post
}

func parseTime(timestamp string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nowString() string {
	return time.Now().UTC().Format(TimeFormat)
}
