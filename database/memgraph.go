package database

import (
	"context"
	"strings"

	"github.com/Gravitalia/forum/helpers"
	"github.com/Gravitalia/forum/model"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/pkg/errors"
)

// Graph stores posts, replies and users in a Neo4j or Memgraph database.
// Replies are linked to their post with a REPLY_TO edge, IDs come from
// Counter nodes.
type Graph struct {
	driver neo4j.DriverWithContext
	now    func() string
}

// NewGraph connects to the graph database and seeds it when empty
func NewGraph(ctx context.Context, url string, username string, password string) (*Graph, error) {
	driver, err := neo4j.NewDriverWithContext(url, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, errors.Wrap(err, "cannot create graph driver")
	}

	if err = driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, errors.Wrapf(err, "cannot reach %s", url)
	}

	g := &Graph{driver: driver, now: nowString}
	if err = g.seed(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, err
	}

	return g, nil
}

// write runs work in a write transaction of a fresh session
func (g *Graph) write(ctx context.Context, work neo4j.ManagedTransactionWork) (any, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	return session.ExecuteWrite(ctx, work)
}

// MakeRequest is a simple way to send a query,
// it returns the first value of the first record
func (g *Graph) MakeRequest(ctx context.Context, query string, params map[string]any) (any, error) {
	return g.write(ctx, func(transaction neo4j.ManagedTransaction) (any, error) {
		return first(ctx, transaction, query, params)
	})
}

func first(ctx context.Context, transaction neo4j.ManagedTransaction, query string, params map[string]any) (any, error) {
	result, err := transaction.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}

	if result.Next(ctx) {
		return result.Record().Values[0], nil
	}

	return nil, result.Err()
}

func (g *Graph) seed(ctx context.Context) error {
	memory := NewMemory()

	posts := make([]map[string]any, 0, len(memory.posts))
	for _, post := range memory.posts {
		posts = append(posts, map[string]any{
			"id":        post.Id,
			"title":     post.Title,
			"content":   post.Content,
			"author":    post.Author,
			"language":  post.Language,
			"timestamp": post.Timestamp,
			"likes":     post.Likes,
		})
	}

	users := make([]map[string]any, 0, len(memory.users))
	for _, user := range memory.users {
		users = append(users, userParams(user))
	}

	_, err := g.write(ctx, func(transaction neo4j.ManagedTransaction) (any, error) {
		count, err := first(ctx, transaction, "MATCH (p:Post) RETURN count(p);", nil)
		if err != nil {
			return nil, err
		}
		if count != nil && count.(int64) > 0 {
			return nil, nil
		}

		if _, err = transaction.Run(ctx,
			"UNWIND $posts AS post CREATE (:Post {id: post.id, title: post.title, content: post.content, author: post.author, language: post.language, timestamp: post.timestamp, likes: post.likes});",
			map[string]any{"posts": posts}); err != nil {
			return nil, err
		}

		if _, err = transaction.Run(ctx,
			"UNWIND $users AS user MERGE (u:User {usernameLower: user.usernameLower}) ON CREATE SET u += user;",
			map[string]any{"users": users}); err != nil {
			return nil, err
		}

		_, err = transaction.Run(ctx,
			"MERGE (p:Counter {name: 'post'}) SET p.value = $posts MERGE (u:Counter {name: 'user'}) SET u.value = $users;",
			map[string]any{"posts": int64(memory.nextPostID - 1), "users": int64(memory.nextUserID - 1)})
		return nil, err
	})
	if err != nil {
		return errors.Wrap(err, "cannot seed graph")
	}

	return nil
}

// ListPosts returns a page of posts with their replies
func (g *Graph) ListPosts(ctx context.Context, query model.PostQuery) ([]model.Post, int, error) {
	query = NormalizeQuery(query)
	var total int64
	list := make([]model.Post, 0, query.Limit)

	_, err := g.write(ctx, func(transaction neo4j.ManagedTransaction) (any, error) {
		count, err := first(ctx, transaction,
			"MATCH (p:Post) WHERE $language = '' OR p.language = $language RETURN count(p);",
			map[string]any{"language": query.Language})
		if err != nil {
			return nil, err
		}
		total, _ = count.(int64)

		result, err := transaction.Run(ctx,
			"MATCH (p:Post) WHERE $language = '' OR p.language = $language WITH p ORDER BY datetime(p.timestamp) DESC SKIP $skip LIMIT $limit OPTIONAL MATCH (r:Reply)-[:REPLY_TO]->(p) WITH p, r ORDER BY toInteger(r.id) RETURN p, collect(r) ORDER BY datetime(p.timestamp) DESC;",
			map[string]any{
				"language": query.Language,
				"skip":     int64((query.Page - 1) * query.Limit),
				"limit":    int64(query.Limit),
			})
		if err != nil {
			return nil, err
		}

		for result.Next(ctx) {
			list = append(list, postOf(result.Record()))
		}

		return nil, result.Err()
	})
	if err != nil {
		return nil, 0, err
	}

	return list, int(total), nil
}

// GetPost allows to get data of a post
func (g *Graph) GetPost(ctx context.Context, id string) (model.Post, error) {
	var post model.Post

	_, err := g.write(ctx, func(transaction neo4j.ManagedTransaction) (any, error) {
		result, err := transaction.Run(ctx,
			"MATCH (p:Post {id: $id}) OPTIONAL MATCH (r:Reply)-[:REPLY_TO]->(p) WITH p, r ORDER BY toInteger(r.id) RETURN p, collect(r);",
			map[string]any{"id": id})
		if err != nil {
			return nil, err
		}

		if result.Next(ctx) {
			post = postOf(result.Record())
			return nil, nil
		}

		if err = result.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return model.Post{}, err
	}

	return post, nil
}

// CreatePost allows to create a new post into the graph database
func (g *Graph) CreatePost(ctx context.Context, post model.Post) (model.Post, error) {
	if post.Language == "" {
		post.Language = DefaultLanguage
	}
	post.Timestamp = g.now()
	post.Likes = 0
	post.Replies = []model.Reply{}

	id, err := g.MakeRequest(ctx,
		"MERGE (c:Counter {name: 'post'}) ON CREATE SET c.value = 0 SET c.value = c.value + 1 WITH c CREATE (p:Post {id: toString(c.value), title: $title, content: $content, author: $author, language: $language, timestamp: $timestamp, likes: 0}) RETURN p.id;",
		map[string]any{
			"title":     post.Title,
			"content":   post.Content,
			"author":    post.Author,
			"language":  post.Language,
			"timestamp": post.Timestamp,
		})
	if err != nil {
		return model.Post{}, err
	}

	post.Id, _ = id.(string)
	return post, nil
}

// LikePost changes the likes of a post, never below zero
func (g *Graph) LikePost(ctx context.Context, id string, delta int64) (int64, error) {
	likes, err := g.MakeRequest(ctx,
		"MATCH (p:Post {id: $id}) SET p.likes = CASE WHEN p.likes + $delta < 0 THEN 0 ELSE p.likes + $delta END RETURN p.likes;",
		map[string]any{"id": id, "delta": delta})
	if err != nil {
		return 0, err
	} else if likes == nil {
		return 0, ErrNotFound
	}

	return likes.(int64), nil
}

// AddReply allows to post a reply on a post
func (g *Graph) AddReply(ctx context.Context, postID string, reply model.Reply) (model.Reply, error) {
	if reply.Language == "" {
		reply.Language = DefaultLanguage
	}
	reply.Id = helpers.Generate()
	reply.Timestamp = g.now()
	reply.Likes = 0

	res, err := g.MakeRequest(ctx,
		"MATCH (p:Post {id: $post}) CREATE (r:Reply {id: $id, content: $content, author: $author, language: $language, timestamp: $timestamp, likes: 0})-[:REPLY_TO]->(p) RETURN r.id;",
		map[string]any{
			"post":      postID,
			"id":        reply.Id,
			"content":   reply.Content,
			"author":    reply.Author,
			"language":  reply.Language,
			"timestamp": reply.Timestamp,
		})
	if err != nil {
		return model.Reply{}, err
	} else if res == nil {
		return model.Reply{}, ErrNotFound
	}

	return reply, nil
}

// DeletePost removes a post and every associated reply
func (g *Graph) DeletePost(ctx context.Context, id string) error {
	res, err := g.MakeRequest(ctx,
		"MATCH (p:Post {id: $id}) WITH p, p.id AS id OPTIONAL MATCH (r:Reply)-[:REPLY_TO]->(p) DETACH DELETE r, p RETURN DISTINCT id;",
		map[string]any{"id": id})
	if err != nil {
		return err
	} else if res == nil {
		return ErrNotFound
	}

	return nil
}

// Stats sums counters over every post
func (g *Graph) Stats(ctx context.Context) (model.Stats, error) {
	stats := model.Stats{RecentActivity: make([]model.Activity, 0, recentActivity)}

	_, err := g.write(ctx, func(transaction neo4j.ManagedTransaction) (any, error) {
		result, err := transaction.Run(ctx,
			"MATCH (p:Post) OPTIONAL MATCH (r:Reply)-[:REPLY_TO]->(p) WITH p, count(r) AS replies RETURN count(p), sum(replies), sum(p.likes), count(DISTINCT p.language);",
			nil)
		if err != nil {
			return nil, err
		}

		if result.Next(ctx) {
			values := result.Record().Values
			stats.TotalPosts = int(toInt(values[0]))
			stats.TotalReplies = int(toInt(values[1]))
			stats.TotalLikes = toInt(values[2])
			stats.LanguagesUsed = int(toInt(values[3]))
		}
		if err = result.Err(); err != nil {
			return nil, err
		}

		result, err = transaction.Run(ctx,
			"MATCH (p:Post) RETURN p.id, p.title, p.author, p.timestamp ORDER BY datetime(p.timestamp) DESC LIMIT $limit;",
			map[string]any{"limit": int64(recentActivity)})
		if err != nil {
			return nil, err
		}

		for result.Next(ctx) {
			values := result.Record().Values
			stats.RecentActivity = append(stats.RecentActivity, model.Activity{
				Id:        toString(values[0]),
				Title:     toString(values[1]),
				Author:    toString(values[2]),
				Timestamp: toString(values[3]),
			})
		}

		return nil, result.Err()
	})
	if err != nil {
		return model.Stats{}, err
	}

	return stats, nil
}

// LoginUser finds the user or creates it with the next user ID
func (g *Graph) LoginUser(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)

	res, err := g.write(ctx, func(transaction neo4j.ManagedTransaction) (any, error) {
		node, err := first(ctx, transaction,
			"MATCH (u:User {usernameLower: $lower}) RETURN u;",
			map[string]any{"lower": strings.ToLower(username)})
		if err != nil || node != nil {
			return node, err
		}

		user := model.User{
			Username:          username,
			Email:             emailOf(username),
			PreferredLanguage: DefaultLanguage,
			JoinDate:          g.now()[:len("2006-01-02")],
		}
		params := userParams(user)
		delete(params, "id")

		return first(ctx, transaction,
			"MERGE (c:Counter {name: 'user'}) ON CREATE SET c.value = 0 SET c.value = c.value + 1 WITH c CREATE (u:User {id: toString(c.value)}) SET u += $user RETURN u;",
			map[string]any{"user": params})
	})
	if err != nil {
		return model.User{}, err
	}

	node, ok := res.(neo4j.Node)
	if !ok {
		return model.User{}, errors.New("invalid user")
	}

	return userOf(node), nil
}

func (g *Graph) GetUser(ctx context.Context, id string) (model.User, error) {
	res, err := g.MakeRequest(ctx, "MATCH (u:User {id: $id}) RETURN u;", map[string]any{"id": id})
	if err != nil {
		return model.User{}, err
	}

	node, ok := res.(neo4j.Node)
	if !ok {
		return model.User{}, ErrNotFound
	}

	return userOf(node), nil
}

func (g *Graph) ListUsers(ctx context.Context) ([]model.User, error) {
	list := make([]model.User, 0)

	_, err := g.write(ctx, func(transaction neo4j.ManagedTransaction) (any, error) {
		result, err := transaction.Run(ctx, "MATCH (u:User) RETURN u ORDER BY toInteger(u.id);", nil)
		if err != nil {
			return nil, err
		}

		for result.Next(ctx) {
			if node, ok := result.Record().Values[0].(neo4j.Node); ok {
				list = append(list, userOf(node))
			}
		}

		return nil, result.Err()
	})
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (g *Graph) SetPreferredLanguage(ctx context.Context, id string, language string) (model.User, error) {
	res, err := g.MakeRequest(ctx,
		"MATCH (u:User {id: $id}) SET u.preferredLanguage = $language RETURN u;",
		map[string]any{"id": id, "language": language})
	if err != nil {
		return model.User{}, err
	}

	node, ok := res.(neo4j.Node)
	if !ok {
		return model.User{}, ErrNotFound
	}

	return userOf(node), nil
}

func (g *Graph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}

func postOf(record *neo4j.Record) model.Post {
	node, _ := record.Values[0].(neo4j.Node)
	post := model.Post{
		Id:        toString(node.Props["id"]),
		Title:     toString(node.Props["title"]),
		Content:   toString(node.Props["content"]),
		Author:    toString(node.Props["author"]),
		Language:  toString(node.Props["language"]),
		Timestamp: toString(node.Props["timestamp"]),
		Likes:     toInt(node.Props["likes"]),
		Replies:   []model.Reply{},
	}

	replies, _ := record.Values[1].([]any)
	for _, value := range replies {
		reply, ok := value.(neo4j.Node)
		if !ok {
			continue
		}

		post.Replies = append(post.Replies, model.Reply{
			Id:        toString(reply.Props["id"]),
			Content:   toString(reply.Props["content"]),
			Author:    toString(reply.Props["author"]),
			Language:  toString(reply.Props["language"]),
			Timestamp: toString(reply.Props["timestamp"]),
			Likes:     toInt(reply.Props["likes"]),
		})
	}

	return post
}

func userOf(node neo4j.Node) model.User {
	return model.User{
		Id:                toString(node.Props["id"]),
		Username:          toString(node.Props["username"]),
		Email:             toString(node.Props["email"]),
		PreferredLanguage: toString(node.Props["preferredLanguage"]),
		JoinDate:          toString(node.Props["joinDate"]),
	}
}

func userParams(user model.User) map[string]any {
	return map[string]any{
		"id":                user.Id,
		"username":          user.Username,
		"usernameLower":     strings.ToLower(user.Username),
		"email":             user.Email,
		"preferredLanguage": user.PreferredLanguage,
		"joinDate":          user.JoinDate,
	}
}

func toString(value any) string {
	s, _ := value.(string)
	return s
}

func toInt(value any) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}
