package database

import (
	"encoding/json"
	"log"

	"github.com/Gravitalia/forum/model"
	"github.com/bradfitz/gomemcache/memcache"
)

// translationTTL is how long, in seconds, a translation stays cached
const translationTTL = 86400

// Memcached caches translation results
type Memcached struct {
	Mem *memcache.Client
}

// NewMemcached connects to the Memcached servers
func NewMemcached(servers ...string) *Memcached {
	return &Memcached{Mem: memcache.New(servers...)}
}

// Get returns a cached translation, a miss or broken entry returns false
func (m *Memcached) Get(key string) (model.Translation, bool) {
	item, err := m.Mem.Get(key)
	if err != nil {
		if err != memcache.ErrCacheMiss {
			log.Printf("(Get) Cannot read %v from memcached: %v", key, err)
		}
		return model.Translation{}, false
	}

	var translation model.Translation
	if err = json.Unmarshal(item.Value, &translation); err != nil {
		return model.Translation{}, false
	}

	return translation, true
}

// Set permits to set a temporary value, on the cache
// via Memcached
func (m *Memcached) Set(key string, translation model.Translation) {
	value, err := json.Marshal(translation)
	if err != nil {
		return
	}

	if err = m.Mem.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: translationTTL,
	}); err != nil {
		log.Printf("(Set) Cannot write %v to memcached: %v", key, err)
	}
}
