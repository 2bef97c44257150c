package events

import (
	"fmt"
	"sync"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/logger"
)

// Registry tracks live subscriptions of one event source.
//
// Removing a handle that is not live is a contract violation. In strict
// mode it panics; otherwise it is logged and reported as
// [domain.ErrStaleHandle], and the registry is left untouched.
type Registry[T any] struct {
	mu      sync.Mutex
	name    string
	strict  bool
	next    domain.Handle
	subs    map[domain.Handle]T
	order   []domain.Handle
	scratch []domain.Handle
	busy    bool
	log     *logger.Logger
}

// NewRegistry creates an empty registry. name tags log lines and errors.
func NewRegistry[T any](name string, strict bool, log *logger.Logger) *Registry[T] {
	return &Registry[T]{
		name:   name,
		strict: strict,
		subs:   make(map[domain.Handle]T),
		log:    log,
	}
}

// Add registers v and returns its handle.
func (r *Registry[T]) Add(v T) domain.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	h := r.next
	r.subs[h] = v
	r.order = append(r.order, h)
	r.log.Debug("%s: subscribed handle %d (live=%d)", r.name, h, len(r.subs))
	return h
}

// Remove cancels h. No callback for h runs after Remove returns.
func (r *Registry[T]) Remove(h domain.Handle) error {
	r.mu.Lock()
	_, ok := r.subs[h]
	if ok {
		delete(r.subs, h)
		for i, o := range r.order {
			if o == h {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	live := len(r.subs)
	r.mu.Unlock()

	if !ok {
		return r.violation("unsubscribe", h)
	}
	r.log.Debug("%s: unsubscribed handle %d (live=%d)", r.name, h, live)
	return nil
}

// Get returns the value registered under h.
func (r *Registry[T]) Get(h domain.Handle) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.subs[h]
	return v, ok
}

// Each calls fn for every live subscription in subscription order. A
// subscription removed by an earlier callback is skipped.
func (r *Registry[T]) Each(fn func(h domain.Handle, v T)) {
	r.mu.Lock()
	var handles []domain.Handle
	if r.busy {
		handles = append([]domain.Handle(nil), r.order...)
	} else {
		r.busy = true
		r.scratch = append(r.scratch[:0], r.order...)
		handles = r.scratch
		defer func() {
			r.mu.Lock()
			r.busy = false
			r.mu.Unlock()
		}()
	}
	r.mu.Unlock()

	for _, h := range handles {
		v, ok := r.Get(h)
		if !ok {
			continue
		}
		fn(h, v)
	}
}

// Live returns the number of live subscriptions.
func (r *Registry[T]) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// Strict reports whether contract violations panic.
func (r *Registry[T]) Strict() bool {
	return r.strict
}

func (r *Registry[T]) violation(op string, h domain.Handle) error {
	err := fmt.Errorf("%s: %s handle %d: %w", r.name, op, h, domain.ErrStaleHandle)
	if r.strict {
		panic(err)
	}
	r.log.Warn("contract violation: %v", err)
	return err
}
