package helpers

import (
	"strconv"
	"sync"
	"time"
)

var (
	lastID int64
	idLock sync.Mutex
)

// Generate returns a millisecond timestamp ID, strictly
// increasing across calls so two replies never share one
func Generate() string {
	idLock.Lock()
	defer idLock.Unlock()

	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id

	return strconv.FormatInt(id, 10)
}
