package translation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/Gravitalia/forum/helpers"
	"github.com/Gravitalia/forum/model"
	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedService is returned when the preferred service is unknown
	ErrUnsupportedService = errors.New("unsupported translation service")
	// ErrAllFailed matches a FailedError
	ErrAllFailed = errors.New("All translation services failed")
)

// FailedError is returned when every provider failed,
// it keeps the error of each one
type FailedError struct {
	Errors map[string]error
}

func (e *FailedError) Error() string {
	return ErrAllFailed.Error()
}

func (e *FailedError) Is(target error) bool {
	return target == ErrAllFailed
}

func (e *FailedError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, err := range e.Errors {
		errs = append(errs, err)
	}
	return errs
}

// Cache stores translations by key
type Cache interface {
	Get(key string) (model.Translation, bool)
	Set(key string, translation model.Translation)
}

// Gateway tries the preferred provider first, then the
// others in fallback order
type Gateway struct {
	providers []Provider
	cache     Cache
}

// NewGateway keeps the providers in the given order
func NewGateway(providers ...Provider) *Gateway {
	return &Gateway{providers: providers}
}

// WithCache enables caching of successful translations
func (g *Gateway) WithCache(cache Cache) *Gateway {
	g.cache = cache
	return g
}

// Supports reports whether a provider named service exists
func (g *Gateway) Supports(service string) bool {
	for _, provider := range g.providers {
		if provider.Name() == service {
			return true
		}
	}
	return false
}

// Translate returns the first successful translation,
// starting with preferred
func (g *Gateway) Translate(ctx context.Context, req Request, preferred string) (model.Translation, error) {
	if !g.Supports(preferred) {
		return model.Translation{}, ErrUnsupportedService
	}

	key := CacheKey(req)
	if g.cache != nil {
		if translation, ok := g.cache.Get(key); ok {
			return translation, nil
		}
	}

	failed := &FailedError{Errors: make(map[string]error)}
	for i, provider := range g.order(preferred) {
		if i > 0 {
			log.Printf("(Translate) Trying fallback service: %s", provider.Name())
		}

		start := time.Now()
		translation, err := provider.Translate(ctx, req)
		helpers.ObserveTranslation(provider.Name(), err == nil, time.Since(start).Seconds())
		if err == nil {
			if g.cache != nil {
				g.cache.Set(key, translation)
			}
			return translation, nil
		}

		failed.Errors[provider.Name()] = err
		if i == 0 {
			log.Printf("(Translate) Primary service %s failed: %v", provider.Name(), err)
		} else {
			log.Printf("(Translate) Fallback service %s failed: %v", provider.Name(), err)
		}

		if ctx.Err() != nil {
			break
		}
	}

	return model.Translation{}, failed
}

// order puts preferred first and keeps the others in place
func (g *Gateway) order(preferred string) []Provider {
	ordered := make([]Provider, 0, len(g.providers))
	for _, provider := range g.providers {
		if provider.Name() == preferred {
			ordered = append(ordered, provider)
		}
	}
	for _, provider := range g.providers {
		if provider.Name() != preferred {
			ordered = append(ordered, provider)
		}
	}
	return ordered
}

// CacheKey identifies a translation request
func CacheKey(req Request) string {
	source := req.Source()
	if source == "" {
		source = "auto"
	}

	sum := sha256.Sum256([]byte(strings.Join([]string{source, req.TargetLang, req.Text}, "\x00")))
	return "translation:" + hex.EncodeToString(sum[:])
}
