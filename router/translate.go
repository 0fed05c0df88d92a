package router

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/Gravitalia/forum/model"
	"github.com/Gravitalia/forum/translation"
	"github.com/gin-gonic/gin"
)

// DefaultService is tried first when the body names none
const DefaultService = "openai"

// Translate sends the text through the provider chain
func (h *Handler) Translate(c *gin.Context) {
	var body model.TranslationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, ErrorInvalidBody)
		return
	}

	if strings.TrimSpace(body.Text) == "" || body.TargetLang == "" {
		abort(c, http.StatusBadRequest, ErrorMissingTranslation)
		return
	}
	if utf8.RuneCountInString(body.Text) > MaxText {
		abort(c, http.StatusBadRequest, ErrorTextTooLong)
		return
	}

	source := body.SourceLang
	if source == "" {
		source = "auto"
	}
	service := body.Service
	if service == "" {
		service = DefaultService
	}

	result, err := h.gateway.Translate(c.Request.Context(), translation.Request{
		Text:       body.Text,
		SourceLang: source,
		TargetLang: body.TargetLang,
	}, service)
	if err != nil {
		if errors.Is(err, translation.ErrUnsupportedService) {
			abort(c, http.StatusBadRequest, ErrorUnsupportedService)
			return
		}
		abort(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// Languages returns every supported language code and name
func Languages(c *gin.Context) {
	c.JSON(http.StatusOK, translation.Languages)
}
