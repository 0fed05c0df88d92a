package router

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/Gravitalia/forum/helpers"
	"github.com/Gravitalia/forum/model"
	"github.com/gin-gonic/gin"
)

// Reply appends a reply to a post
func (h *Handler) Reply(c *gin.Context) {
	var body model.ReplyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, ErrorInvalidBody)
		return
	}

	body.Content = strings.TrimSpace(body.Content)
	body.Author = strings.TrimSpace(body.Author)

	if body.Content == "" || body.Author == "" {
		abort(c, http.StatusBadRequest, ErrorMissingReplyFields)
		return
	}
	if utf8.RuneCountInString(body.Content) > MaxReply {
		abort(c, http.StatusBadRequest, ErrorReplyTooLong)
		return
	}

	reply, err := h.store.AddReply(c.Request.Context(), c.Param("id"), model.Reply{
		Content:  body.Content,
		Author:   body.Author,
		Language: strings.TrimSpace(body.Language),
	})
	if err != nil {
		h.storeError(c, "Reply", err)
		return
	}

	h.publisher.Publish(helpers.SubjectPostReplied, model.Message{
		Type:   "replied",
		Post:   c.Param("id"),
		Author: reply.Author,
	})

	c.JSON(http.StatusCreated, reply)
}
