package web

import (
	"context"
	"sync"
	"time"

	"storefront/internal/shop"
	"storefront/internal/store"
)

// visitor — состояние одного браузера: своя корзина, буфер картинок и
// запись сессии. mu сериализует запросы одного посетителя.
type visitor struct {
	mu    sync.Mutex
	app   *shop.App
	inbox *shop.Inbox

	// под registry.mu
	refs     int
	lastSeen time.Time
}

// registry держит в памяти только посетителей, у которых есть что
// хранить (корзина, вход, выбранные картинки), и не дольше idleTTL.
type registry struct {
	mu        sync.Mutex
	st        store.Store
	opts      []shop.Option
	visitors  map[string]*visitor
	idleTTL   time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func newRegistry(st store.Store, opts []shop.Option, idleTTL time.Duration) *registry {
	return &registry{
		st:       st,
		opts:     opts,
		visitors: make(map[string]*visitor),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// acquire возвращает посетителя, при первом обращении поднимая его
// сессию. Каждому acquire — ровно один release.
func (r *registry) acquire(ctx context.Context, id string) (*visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	if v, ok := r.visitors[id]; ok {
		v.refs++
		return v, nil
	}
	inbox := &shop.Inbox{}
	opts := append(append([]shop.Option(nil), r.opts...),
		shop.WithNotifier(inbox),
		shop.WithSessionKey(store.SessionKey+":"+id),
	)
	app := shop.New(r.st, opts...)
	if err := app.Restore(ctx); err != nil {
		return nil, err
	}
	v := &visitor{app: app, inbox: inbox, refs: 1}
	r.visitors[id] = v
	return v, nil
}

// release отпускает посетителя; пустого забываем сразу, он
// восстановится из записи сессии при следующем запросе
func (r *registry) release(id string, v *visitor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.refs--
	v.lastSeen = r.now()
	if v.refs > 0 {
		return
	}
	v.mu.Lock()
	idle := v.app.Idle()
	v.mu.Unlock()
	if idle && r.visitors[id] == v {
		delete(r.visitors, id)
	}
}

// sweepLocked выселяет посетителей без запросов дольше idleTTL;
// проход не чаще раза в минуту
func (r *registry) sweepLocked() {
	now := r.now()
	if r.idleTTL <= 0 || now.Sub(r.lastSweep) < time.Minute {
		return
	}
	r.lastSweep = now
	for id, v := range r.visitors {
		if v.refs == 0 && now.Sub(v.lastSeen) > r.idleTTL {
			delete(r.visitors, id)
		}
	}
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}
