package v1

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Cache keeps the last successful fetch per view so the app still has
// something to show when every endpoint is down.
type Cache struct {
	mu  sync.Mutex
	dir string
}

type cachedView struct {
	FetchedAt time.Time       `json:"fetchedAt"`
	Payload   json.RawMessage `json:"payload"`
}

func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

func (c *Cache) Put(view string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	entry, err := json.Marshal(cachedView{FetchedAt: time.Now(), Payload: raw})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tmp := c.file(view) + ".tmp"
	if err := os.WriteFile(tmp, entry, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, c.file(view))
}

// Get loads the last snapshot for a view. The second return is the fetch
// time, so callers can tell the user how stale the data is.
func (c *Cache) Get(view string, out any) (time.Time, bool) {
	c.mu.Lock()
	raw, err := os.ReadFile(c.file(view))
	c.mu.Unlock()
	if err != nil {
		return time.Time{}, false
	}

	var entry cachedView
	if err := json.Unmarshal(raw, &entry); err != nil {
		return time.Time{}, false
	}
	if err := json.Unmarshal(entry.Payload, out); err != nil {
		return time.Time{}, false
	}
	return entry.FetchedAt, true
}

func (c *Cache) file(view string) string {
	return filepath.Join(c.dir, "snapshot_"+view+".json")
}
