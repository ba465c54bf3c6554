// Package notify — короткоживущие уведомления для ленты в шапке:
// "задание принято", "начислены баллы" и т.п. Живут в памяти процесса,
// после истечения срока исчезают сами. Переживать рестарт им не нужно.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultTTL = 5 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Kind      Kind      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Center struct {
	mu     sync.Mutex
	ttl    time.Duration
	items  map[string]Notification        // id -> уведомление
	timers map[string]*time.Timer         // id -> таймер самоудаления
	byUser map[string]map[string]struct{} // user_id -> набор id
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:    ttl,
		items:  make(map[string]Notification),
		timers: make(map[string]*time.Timer),
		byUser: make(map[string]map[string]struct{}),
	}
}

// Add вешает уведомление пользователю и заводит таймер самоудаления.
// Сообщение опционально, заголовок — нет. duration <= 0 означает
// срок центра по умолчанию.
func (c *Center) Add(userID string, kind Kind, title, message string, duration time.Duration) Notification {
	if duration <= 0 {
		duration = c.ttl
	}
	n := Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}

	c.mu.Lock()
	c.items[n.ID] = n
	if c.byUser[userID] == nil {
		c.byUser[userID] = make(map[string]struct{})
	}
	c.byUser[userID][n.ID] = struct{}{}
	c.timers[n.ID] = time.AfterFunc(duration, func() { c.Remove(n.ID) })
	c.mu.Unlock()

	return n
}

// Remove снимает уведомление досрочно (пользователь закрыл крестиком).
func (c *Center) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.items[id]
	if !ok {
		return
	}
	delete(c.items, id)
	if t := c.timers[id]; t != nil {
		t.Stop()
		delete(c.timers, id)
	}
	if set := c.byUser[n.UserID]; set != nil {
		delete(set, id)
		if len(set) == 0 {
			delete(c.byUser, n.UserID)
		}
	}
}

// Active возвращает живые уведомления пользователя, старые первыми.
func (c *Center) Active(userID string) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, 0, len(c.byUser[userID]))
	for id := range c.byUser[userID] {
		out = append(out, c.items[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Shutdown останавливает все таймеры. Вызывается при остановке сервера.
func (c *Center) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.items = make(map[string]Notification)
	c.byUser = make(map[string]map[string]struct{})
}
