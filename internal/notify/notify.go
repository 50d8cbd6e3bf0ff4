// Package notify delivers the transient messages shown after user actions.
package notify

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 5 * time.Second

// Notifier shows a transient message. It is fire-and-forget.
type Notifier interface {
	Notify(message string, severity Severity)
}

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// CacheNotifier keeps messages in a TTL cache until they expire or are
// dismissed. It is safe for concurrent use.
type CacheNotifier struct {
	cache *cache.Cache
	seq   atomic.Uint64
}

func NewCacheNotifier(ttl time.Duration) *CacheNotifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CacheNotifier{cache: cache.New(ttl, 2*ttl)}
}

func (n *CacheNotifier) Notify(message string, severity Severity) {
	id := fmt.Sprintf("%012d", n.seq.Add(1))
	n.cache.Set(id, Notification{
		ID:        id,
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	}, cache.DefaultExpiration)

	entry := logrus.WithFields(logrus.Fields{"notification": id, "severity": severity})
	if severity == Error {
		entry.Warn(message)
		return
	}
	entry.Debug(message)
}

// Recent returns the unexpired messages, oldest first.
func (n *CacheNotifier) Recent() []Notification {
	items := n.cache.Items()
	out := make([]Notification, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(Notification))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Dismiss removes a message before it expires.
func (n *CacheNotifier) Dismiss(id string) bool {
	if _, ok := n.cache.Get(id); !ok {
		return false
	}
	n.cache.Delete(id)
	return true
}

type discard struct{}

func (discard) Notify(string, Severity) {}

// Discard drops every message.
var Discard Notifier = discard{}
