package router

import (
	"net/http"
	"time"

	"github.com/Gravitalia/forum/model"
	"github.com/gin-gonic/gin"
)

// Version is reported by the health route
const Version = "1.0.0"

// Every possible error list
const (
	ErrorInternalServerError = "Internal server error"
	ErrorInvalidBody         = "Invalid body"
	ErrorInvalidToken        = "Invalid token"
	ErrorInvalidAction       = "Invalid action. Use like or unlike."
	ErrorMissingPostFields   = "Missing required fields: title, content, author"
	ErrorMissingReplyFields  = "Missing required fields: content, author"
	ErrorMissingUsername     = "Username is required"
	ErrorMissingTranslation  = "Missing required parameters: text and targetLang"
	ErrorPostNotFound        = "Post not found"
	ErrorUserNotFound        = "User not found"
	ErrorTitleTooLong        = "Title too long. Maximum 200 characters allowed."
	ErrorContentTooLong      = "Content too long. Maximum 5000 characters allowed."
	ErrorReplyTooLong        = "Reply too long. Maximum 2000 characters allowed."
	ErrorTextTooLong         = "Text too long. Maximum 5000 characters allowed."
	ErrorTooManyRequests     = "Too many requests from this IP, please try again later."
	ErrorUnsupportedService  = "Unsupported translation service"
)

// Every OK message reponse
const (
	Ok            = "OK"
	OkDeletedPost = "Post deleted successfully"
)

// Maximum lengths, in characters
const (
	MaxTitle   = 200
	MaxContent = 5000
	MaxReply   = 2000
	MaxText    = 5000
)

func Index(c *gin.Context) {
	c.String(http.StatusOK, Ok)
}

// Health reports the process uptime
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.Health{
		Status:    Ok,
		Timestamp: time.Now().UnixMilli(),
		Uptime:    time.Since(h.started).Seconds(),
		Version:   Version,
	})
}

// abort writes a RequestError with the given status
func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, model.RequestError{
		Error:   true,
		Message: message,
	})
}
