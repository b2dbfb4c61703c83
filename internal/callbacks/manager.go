// Package callbacks fans mission change events out to subscribers, one
// goroutine per delivery so a slow dashboard socket never blocks a save.
package callbacks

import (
	"sync"
)

// Feed is a named-subscriber broadcast channel. A subscriber that
// returns false from its handler is dropped from the feed.
type Feed[V any] struct {
	subs sync.Map
}

func New[V any]() *Feed[V] {
	return &Feed[V]{}
}

func (f *Feed[V]) Publish(msg V) {
	f.subs.Range(func(key, value any) bool {
		if fn, ok := value.(func(msg V) bool); ok {
			go func() {
				if !fn(msg) {
					f.subs.Delete(key)
				}
			}()
		}

		return true
	})
}

func (f *Feed[V]) Subscribe(name string, fn func(msg V) bool) {
	f.subs.Store(name, fn)
}

func (f *Feed[V]) Unsubscribe(name string) bool {
	_, found := f.subs.LoadAndDelete(name)

	return found
}
