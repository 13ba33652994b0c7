package segment

import (
	"iter"

	"github.com/matzehuels/trackgraph/pkg/errors"
)

// Registry maps keys to segments. Keys are unique and a segment can be
// registered under one key only. The registry never overwrites: two
// logically distinct strips collapsing into one would corrupt the layout.
type Registry[K comparable, S comparable] struct {
	byKey   map[K]S
	keyOf   map[S]K
	ordered []K
}

// NewRegistry creates an empty registry.
func NewRegistry[K comparable, S comparable]() *Registry[K, S] {
	return &Registry[K, S]{
		byKey: make(map[K]S),
		keyOf: make(map[S]K),
	}
}

// Registration is the pending half of a two-step registration.
type Registration[K comparable, S comparable] struct {
	registry *Registry[K, S]
	segment  S
	done     bool
}

// Register starts registering s. The binding is only stored once As is
// called on the returned Registration.
func (r *Registry[K, S]) Register(s S) *Registration[K, S] {
	return &Registration[K, S]{registry: r, segment: s}
}

// As completes the registration under key. It fails with DUPLICATE_KEY if
// key is taken, if the segment is already registered, or if As was already
// called on this Registration.
func (b *Registration[K, S]) As(key K) error {
	r := b.registry
	if b.done {
		return errors.New(errors.ErrCodeDuplicateKey, "registration already completed, cannot bind again as %v", key)
	}
	if _, taken := r.byKey[key]; taken {
		return errors.New(errors.ErrCodeDuplicateKey, "key %v already registered", key)
	}
	if prev, seen := r.keyOf[b.segment]; seen {
		return errors.New(errors.ErrCodeDuplicateKey, "segment already registered as %v, cannot bind as %v", prev, key)
	}
	r.byKey[key] = b.segment
	r.keyOf[b.segment] = key
	r.ordered = append(r.ordered, key)
	b.done = true
	return nil
}

// Resolve returns the segment registered under key, or a KEY_NOT_FOUND
// error. A missing key is a programmer error and must not be retried.
func (r *Registry[K, S]) Resolve(key K) (S, error) {
	s, ok := r.byKey[key]
	if !ok {
		var zero S
		return zero, errors.New(errors.ErrCodeKeyNotFound, "no segment registered for %v", key)
	}
	return s, nil
}

// MustResolve is like Resolve but panics if the key is missing.
func (r *Registry[K, S]) MustResolve(key K) S {
	s, err := r.Resolve(key)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the segment registered under key and whether it exists.
func (r *Registry[K, S]) Lookup(key K) (S, bool) {
	s, ok := r.byKey[key]
	return s, ok
}

// KeyOf returns the key a segment was registered under.
func (r *Registry[K, S]) KeyOf(s S) (K, bool) {
	k, ok := r.keyOf[s]
	return k, ok
}

// Len returns the number of registered segments.
func (r *Registry[K, S]) Len() int { return len(r.byKey) }

// All yields every binding in registration order.
func (r *Registry[K, S]) All() iter.Seq2[K, S] {
	return func(yield func(K, S) bool) {
		for _, k := range r.ordered {
			if !yield(k, r.byKey[k]) {
				return
			}
		}
	}
}
