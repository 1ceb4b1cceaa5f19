package session

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ErrTypeMismatch is matched by every *TypeMismatchError.
var ErrTypeMismatch = errors.New("session slot type mismatch")

// TypeMismatchError reports a slot read with a type other than the stored one.
type TypeMismatchError struct {
	Slot string
	Want cty.Type
	Got  cty.Type
	Err  error
}

func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("session slot %q holds %s, not %s", e.Slot, e.Got.FriendlyName(), e.Want.FriendlyName())
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

func (e *TypeMismatchError) Unwrap() error { return e.Err }

// Session is the state of one learner.
type Session struct {
	ID string

	pass     sync.Mutex
	mu       sync.RWMutex
	slots    map[string]cty.Value
	lastSeen atomic.Int64
}

// New returns an empty session with the given id. The Manager is the usual
// source of sessions; New exists for one-off passes and tests.
func New(id string) *Session {
	s := &Session{ID: id, slots: make(map[string]cty.Value)}
	s.Touch(time.Now())
	return s
}

// Touch records activity at t.
func (s *Session) Touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

// LastSeen returns the time of the most recent activity.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Exclusive runs fn while holding the session's pass lock, so render passes
// of one session never interleave.
func (s *Session) Exclusive(fn func() error) error {
	s.pass.Lock()
	defer s.pass.Unlock()
	return fn()
}

// Value returns the raw slot value.
func (s *Session) Value(name string) (cty.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[name]
	return v, ok
}

// SetValue stores a raw slot value. Null and unknown values are rejected.
func (s *Session) SetValue(name string, v cty.Value) error {
	if v.IsNull() || !v.IsKnown() {
		return fmt.Errorf("session slot %q: value must be known and not null", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[name] = v
	return nil
}

// Has reports whether the slot exists.
func (s *Session) Has(name string) bool {
	_, ok := s.Value(name)
	return ok
}

// Delete removes a slot. The next typed read re-initialises it.
func (s *Session) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, name)
}

// Keys returns the slot names in sorted order.
func (s *Session) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.slots))
}

// Load reads slot name as T. A missing slot is initialised with def and a
// copy of def is returned, so callers may mutate the result freely.
func Load[T any](s *Session, name string, def T) (T, error) {
	var zero T
	ty, err := gocty.ImpliedType(def)
	if err != nil {
		return zero, fmt.Errorf("session slot %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.slots[name]
	if !ok {
		v, err := toCty(def, ty)
		if err != nil {
			return zero, fmt.Errorf("session slot %q: %w", name, err)
		}
		s.slots[name] = v
		current = v
	}

	if !current.Type().Equals(ty) {
		return zero, &TypeMismatchError{Slot: name, Want: ty, Got: current.Type()}
	}
	var out T
	if err := gocty.FromCtyValue(current, &out); err != nil {
		return zero, &TypeMismatchError{Slot: name, Want: ty, Got: current.Type(), Err: err}
	}
	return out, nil
}

// Store writes v into slot name, replacing any previous value and type.
func Store[T any](s *Session, name string, v T) error {
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return fmt.Errorf("session slot %q: %w", name, err)
	}
	cv, err := toCty(v, ty)
	if err != nil {
		return fmt.Errorf("session slot %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[name] = cv
	return nil
}

func toCty(v any, ty cty.Type) (cty.Value, error) {
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return cty.NilVal, fmt.Errorf("NaN cannot be stored")
	}
	cv, err := gocty.ToCtyValue(v, ty)
	if err != nil {
		return cty.NilVal, err
	}
	// nil slices and maps convert to null; slots hold empty collections instead.
	if cv.IsNull() {
		switch {
		case ty.IsListType():
			return cty.ListValEmpty(ty.ElementType()), nil
		case ty.IsMapType():
			return cty.MapValEmpty(ty.ElementType()), nil
		}
		return cty.NilVal, fmt.Errorf("null values cannot be stored")
	}
	return cv, nil
}

// Int reads an integer slot.
func (s *Session) Int(name string, def int) (int, error) { return Load(s, name, def) }

// Float reads a float slot.
func (s *Session) Float(name string, def float64) (float64, error) { return Load(s, name, def) }

// String reads a string slot.
func (s *Session) String(name string, def string) (string, error) { return Load(s, name, def) }

// Bool reads a bool slot.
func (s *Session) Bool(name string, def bool) (bool, error) { return Load(s, name, def) }

// Strings reads a list-of-strings slot.
func (s *Session) Strings(name string, def []string) ([]string, error) {
	out, err := Load(s, name, def)
	if out == nil && err == nil {
		out = []string{}
	}
	return out, err
}

// StringMap reads a map-of-strings slot.
func (s *Session) StringMap(name string, def map[string]string) (map[string]string, error) {
	out, err := Load(s, name, def)
	if out == nil && err == nil {
		out = map[string]string{}
	}
	return out, err
}

// FloatMap reads a map-of-numbers slot.
func (s *Session) FloatMap(name string, def map[string]float64) (map[string]float64, error) {
	out, err := Load(s, name, def)
	if out == nil && err == nil {
		out = map[string]float64{}
	}
	return out, err
}

// SetInt writes an integer slot.
func (s *Session) SetInt(name string, v int) error { return Store(s, name, v) }

// SetFloat writes a float slot.
func (s *Session) SetFloat(name string, v float64) error { return Store(s, name, v) }

// SetString writes a string slot.
func (s *Session) SetString(name string, v string) error { return Store(s, name, v) }

// SetBool writes a bool slot.
func (s *Session) SetBool(name string, v bool) error { return Store(s, name, v) }

// SetStrings writes a list-of-strings slot.
func (s *Session) SetStrings(name string, v []string) error { return Store(s, name, v) }

// SetStringMap writes a map-of-strings slot.
func (s *Session) SetStringMap(name string, v map[string]string) error { return Store(s, name, v) }

// SetFloatMap writes a map-of-numbers slot.
func (s *Session) SetFloatMap(name string, v map[string]float64) error { return Store(s, name, v) }
