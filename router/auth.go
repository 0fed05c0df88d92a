package router

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Gravitalia/forum/database"
	"github.com/Gravitalia/forum/helpers"
	"github.com/Gravitalia/forum/model"
	"github.com/gin-gonic/gin"
)

// DefaultUser is the caller when no identity is sent
const DefaultUser = "1"

// Login finds or creates the user and returns a token
func (h *Handler) Login(c *gin.Context) {
	var body model.LoginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, ErrorInvalidBody)
		return
	}

	if strings.TrimSpace(body.Username) == "" {
		abort(c, http.StatusBadRequest, ErrorMissingUsername)
		return
	}

	user, err := h.store.LoginUser(c.Request.Context(), body.Username)
	if err != nil {
		log.Printf("(Login) Cannot log %v in: %v", body.Username, err)
		abort(c, http.StatusInternalServerError, ErrorInternalServerError)
		return
	}

	token, err := helpers.CreateToken(h.config.JWTSecret, user.Id)
	if err != nil {
		log.Printf("(Login) Cannot create token: %v", err)
		abort(c, http.StatusInternalServerError, ErrorInternalServerError)
		return
	}

	c.JSON(http.StatusOK, model.Login{
		User:  user,
		Token: token,
	})
}

// Me returns the calling user
func (h *Handler) Me(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, user)
}

// Preferences updates the preferred language of the caller
func (h *Handler) Preferences(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}

	var body model.PreferencesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, ErrorInvalidBody)
		return
	}

	if language := strings.TrimSpace(body.PreferredLanguage); language != "" {
		updated, err := h.store.SetPreferredLanguage(c.Request.Context(), user.Id, language)
		if err != nil {
			h.userError(c, "Preferences", err)
			return
		}
		user = updated
	}

	c.JSON(http.StatusOK, user)
}

// caller resolves the user from the bearer token, then from the
// x-user-id header, and writes the error response on failure
func (h *Handler) caller(c *gin.Context) (model.User, bool) {
	id := c.GetHeader("x-user-id")
	if id == "" {
		id = DefaultUser
	}

	if token := c.GetHeader("Authorization"); token != "" {
		subject, err := helpers.CheckToken(h.config.JWTSecret, token)
		if err != nil {
			abort(c, http.StatusUnauthorized, ErrorInvalidToken)
			return model.User{}, false
		}
		id = subject
	}

	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			abort(c, http.StatusUnauthorized, ErrorUserNotFound)
		} else {
			h.userError(c, "caller", err)
		}
		return model.User{}, false
	}

	return user, true
}

// userError maps a store error on users to its response
func (h *Handler) userError(c *gin.Context, where string, err error) {
	if errors.Is(err, database.ErrNotFound) {
		abort(c, http.StatusNotFound, ErrorUserNotFound)
		return
	}

	log.Printf("(%s) Database error: %v", where, err)
	abort(c, http.StatusInternalServerError, ErrorInternalServerError)
}
