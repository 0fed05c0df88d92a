package router

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Gravitalia/forum/database"
	"github.com/Gravitalia/forum/helpers"
	"github.com/Gravitalia/forum/model"
	"github.com/gin-gonic/gin"
)

// ListPosts returns a page of posts, newest first
func (h *Handler) ListPosts(c *gin.Context) {
	query := database.NormalizeQuery(model.PostQuery{
		Page:     atoi(c.Query("page")),
		Limit:    atoi(c.Query("limit")),
		Language: c.Query("language"),
	})

	posts, total, err := h.store.ListPosts(c.Request.Context(), query)
	if err != nil {
		log.Printf("(ListPosts) Cannot list posts: %v", err)
		abort(c, http.StatusInternalServerError, ErrorInternalServerError)
		return
	}

	c.JSON(http.StatusOK, model.PostList{
		Posts:      posts,
		Pagination: database.Paginate(query, total),
	})
}

func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.store.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, "GetPost", err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost validates and stores a new post
func (h *Handler) CreatePost(c *gin.Context) {
	var body model.PostBody
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, ErrorInvalidBody)
		return
	}

	body.Title = strings.TrimSpace(body.Title)
	body.Content = strings.TrimSpace(body.Content)
	body.Author = strings.TrimSpace(body.Author)

	if body.Title == "" || body.Content == "" || body.Author == "" {
		abort(c, http.StatusBadRequest, ErrorMissingPostFields)
		return
	}
	if utf8.RuneCountInString(body.Title) > MaxTitle {
		abort(c, http.StatusBadRequest, ErrorTitleTooLong)
		return
	}
	if utf8.RuneCountInString(body.Content) > MaxContent {
		abort(c, http.StatusBadRequest, ErrorContentTooLong)
		return
	}

	post, err := h.store.CreatePost(c.Request.Context(), model.Post{
		Title:    body.Title,
		Content:  body.Content,
		Author:   body.Author,
		Language: strings.TrimSpace(body.Language),
	})
	if err != nil {
		h.storeError(c, "CreatePost", err)
		return
	}

	h.publisher.Publish(helpers.SubjectPostCreated, model.Message{
		Type:   "created",
		Post:   post.Id,
		Author: post.Author,
	})

	c.JSON(http.StatusCreated, post)
}

// LikePost adds or removes one like
func (h *Handler) LikePost(c *gin.Context) {
	var body model.LikeBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		abort(c, http.StatusBadRequest, ErrorInvalidBody)
		return
	}

	var delta int64
	switch body.Action {
	case "", "like":
		delta = 1
	case "unlike":
		delta = -1
	default:
		abort(c, http.StatusBadRequest, ErrorInvalidAction)
		return
	}

	likes, err := h.store.LikePost(c.Request.Context(), c.Param("id"), delta)
	if err != nil {
		h.storeError(c, "LikePost", err)
		return
	}

	h.publisher.Publish(helpers.SubjectPostLiked, model.Message{
		Type:  "liked",
		Post:  c.Param("id"),
		Likes: likes,
	})

	c.JSON(http.StatusOK, model.Likes{Likes: likes})
}

func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.store.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		h.storeError(c, "DeletePost", err)
		return
	}

	h.publisher.Publish(helpers.SubjectPostDeleted, model.Message{
		Type: "deleted",
		Post: c.Param("id"),
	})

	c.JSON(http.StatusOK, model.RequestError{
		Error:   false,
		Message: OkDeletedPost,
	})
}

// Stats summarizes the forum
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		h.storeError(c, "Stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// storeError maps a store error to its response
func (h *Handler) storeError(c *gin.Context, where string, err error) {
	if errors.Is(err, database.ErrNotFound) {
		abort(c, http.StatusNotFound, ErrorPostNotFound)
		return
	}

	log.Printf("(%s) Database error: %v", where, err)
	abort(c, http.StatusInternalServerError, ErrorInternalServerError)
}

// atoi returns 0 for anything that is not a number
func atoi(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
