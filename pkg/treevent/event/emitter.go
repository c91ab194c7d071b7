package event

import (
	"sync"
	"sync/atomic"
	"weak"
)

// Emitter holds named event subscriptions and dispatches them synchronously.
//
// The zero value is ready to use. Embed an Emitter in any struct to make it
// an event source; the embedding struct then satisfies Dispatcher.
// Handler state is created lazily on the first subscription.
type Emitter struct {
	mu sync.RWMutex

	// events is the EmitterState: event name -> registrations in dispatch order.
	events map[string][]Registration

	// relay is the RelayState: identity token of other -> what we registered there.
	relay map[string]*relayEntry

	// subscribers that hold relay entries pointing at this emitter, by their
	// token. Held weakly: being listened to never keeps a subscriber alive.
	subscribers map[string]weak.Pointer[Emitter]

	receiver any

	cidOnce sync.Once
	cid     string
}

// SetReceiver sets the object reported as CurrentTarget when this emitter
// dispatches. Embedding types call it with themselves; by default the
// emitter reports itself.
func (e *Emitter) SetReceiver(recv any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.receiver = recv
}

func (e *Emitter) recv() any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.receiver != nil {
		return e.receiver
	}
	return e
}

// EventEmitter returns e. It lets Target resolve the state behind any type
// that embeds an Emitter.
func (e *Emitter) EventEmitter() *Emitter {
	return e
}

// AddEvent appends l to the handlers for name. Adding the same listener
// twice registers it twice. A nil listener is ignored.
func (e *Emitter) AddEvent(name string, l *Listener) *Emitter {
	if l == nil {
		return e
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.events == nil {
		e.events = make(map[string][]Registration)
	}
	e.events[name] = append(e.events[name], Registration{Name: name, Listener: l})
	return e
}

// On is an alias of AddEvent.
func (e *Emitter) On(name string, l *Listener) *Emitter {
	return e.AddEvent(name, l)
}

// Bind is the adapter primitive form of AddEvent.
func (e *Emitter) Bind(name string, l *Listener) {
	e.AddEvent(name, l)
}

// Delegate registers l for name. Plain emitters have no children to
// delegate to, so the selector is ignored.
func (e *Emitter) Delegate(selector, name string, l *Listener) *Emitter {
	return e.AddEvent(name, l)
}

// RemoveEvent removes every registration of l under name.
// A nil listener removes all handlers for name.
func (e *Emitter) RemoveEvent(name string, l *Listener) *Emitter {
	return e.removeWhere(name, func(reg Registration) bool {
		return l == nil || reg.Listener == l
	})
}

// Off is an alias of RemoveEvent.
func (e *Emitter) Off(name string, l *Listener) *Emitter {
	return e.RemoveEvent(name, l)
}

// Unbind is the adapter primitive form of RemoveEvent.
func (e *Emitter) Unbind(name string, l *Listener) {
	e.RemoveEvent(name, l)
}

// Undelegate removes l for name, ignoring the selector.
func (e *Emitter) Undelegate(selector, name string, l *Listener) *Emitter {
	return e.RemoveEvent(name, l)
}

// RemoveEventID removes every registration under name whose listener has
// the given identity token. An empty id removes all handlers for name.
func (e *Emitter) RemoveEventID(name, id string) *Emitter {
	return e.removeWhere(name, func(reg Registration) bool {
		return id == "" || reg.Listener.ID() == id
	})
}

// RemoveEventMatch removes registrations under name for which match returns
// true. When match is nil it behaves like RemoveEvent(name, l).
func (e *Emitter) RemoveEventMatch(name string, l *Listener, match Matcher) *Emitter {
	if match == nil {
		return e.RemoveEvent(name, l)
	}
	return e.removeWhere(name, func(reg Registration) bool {
		return match(reg, name, l)
	})
}

func (e *Emitter) removeWhere(name string, remove func(Registration) bool) *Emitter {
	e.mu.Lock()
	defer e.mu.Unlock()

	regs, ok := e.events[name]
	if !ok {
		return e
	}

	// Build a fresh slice; in-flight dispatch passes hold their own copy.
	kept := make([]Registration, 0, len(regs))
	for _, reg := range regs {
		if !remove(reg) {
			kept = append(kept, reg)
		}
	}
	if len(kept) == 0 {
		delete(e.events, name)
		return e
	}
	e.events[name] = kept
	return e
}

// Dispatch fires name with args and returns the event descriptor, or nil
// when nothing was ever registered on this emitter.
func (e *Emitter) Dispatch(name string, args ...any) *Event {
	return e.DispatchAs(e.recv(), NewEvent(name), args...)
}

// DispatchEvent fires ev with args. See Dispatch.
func (e *Emitter) DispatchEvent(ev *Event, args ...any) *Event {
	return e.DispatchAs(e.recv(), ev, args...)
}

// Trigger is the adapter primitive form of DispatchEvent.
func (e *Emitter) Trigger(ev *Event, args ...any) *Event {
	return e.DispatchEvent(ev, args...)
}

// DispatchAs fires ev with recv reported as CurrentTarget.
//
// Handlers run in registration order over a snapshot taken before the first
// call, so handlers may add or remove registrations (including their own)
// without affecting the current pass. A panicking handler aborts the pass
// and the panic propagates to the caller.
func (e *Emitter) DispatchAs(recv any, ev *Event, args ...any) *Event {
	if ev == nil {
		return nil
	}

	e.mu.RLock()
	if e.events == nil {
		e.mu.RUnlock()
		return nil
	}
	regs := e.events[ev.Type]
	handlers := make([]*Listener, len(regs))
	for i, reg := range regs {
		handlers[i] = reg.Listener
	}
	e.mu.RUnlock()

	for _, h := range handlers {
		ev.CurrentTarget = recv
		h.Handle(ev, args...)
	}

	if o := currentObserver(); o != nil {
		o.Dispatched(recv, ev, len(handlers))
	}
	return ev
}

// One registers l so that it runs for the first dispatch of name only.
// The wrapper carries l's identity token, so RemoveEventID(name, l.ID())
// cancels it before it fires.
func (e *Emitter) One(name string, l *Listener) *Emitter {
	if l == nil {
		return e
	}
	e.AddEvent(name, onceListener(l, func(w *Listener) { e.RemoveEvent(name, w) }))
	return e
}

// onceListener wraps l so it unregisters itself through unbind before
// delegating. The fired guard keeps concurrent passes from running l twice.
func onceListener(l *Listener, unbind func(w *Listener)) *Listener {
	var fired atomic.Bool
	w := &Listener{id: l.id}
	w.fn = func(ev *Event, args ...any) {
		if !fired.CompareAndSwap(false, true) {
			return
		}
		unbind(w)
		l.Handle(ev, args...)
	}
	return w
}

// Listeners returns the listeners registered for name in dispatch order.
func (e *Emitter) Listeners(name string) []*Listener {
	e.mu.RLock()
	defer e.mu.RUnlock()

	regs := e.events[name]
	out := make([]*Listener, len(regs))
	for i, reg := range regs {
		out[i] = reg.Listener
	}
	return out
}

// HasListeners reports whether any handler is registered for name.
func (e *Emitter) HasListeners(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.events[name]) > 0
}

// Dispose releases everything this emitter holds: its own relay
// subscriptions are torn down, subscribers listening to it drop their
// bookkeeping for it, and all registrations are discarded.
func (e *Emitter) Dispose() {
	e.StopListening(nil, "", nil)

	e.mu.Lock()
	subs := e.subscribers
	e.subscribers = nil
	e.events = nil
	e.mu.Unlock()

	cid := e.CID()
	for _, w := range subs {
		if sub := w.Value(); sub != nil {
			sub.forgetRelay(cid)
		}
	}
}
