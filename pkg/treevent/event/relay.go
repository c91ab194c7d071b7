package event

import "weak"

// relayEntry records what a subscriber registered on one other object.
// Objects backed by an Emitter are referenced weakly, so the entry never
// keeps them alive; dispatchers managing their own subscriptions have no
// Emitter to point at and are held directly.
type relayEntry struct {
	em     weak.Pointer[Emitter]
	disp   Dispatcher
	events map[string][]*Listener
}

func newRelayEntry(t Target) *relayEntry {
	entry := &relayEntry{events: make(map[string][]*Listener)}
	if t.em != nil {
		entry.em = weak.Make(t.em)
	} else {
		entry.disp = t.disp
	}
	return entry
}

func (r *relayEntry) bind(name string, l *Listener) {
	if em := r.em.Value(); em != nil {
		em.AddEvent(name, l)
		return
	}
	if r.disp != nil {
		r.disp.Bind(name, l)
	}
}

// unbind removes l from the other object. Nothing happens once the object
// has been collected: its registrations went with it.
func (r *relayEntry) unbind(name string, l *Listener) {
	if em := r.em.Value(); em != nil {
		em.RemoveEvent(name, l)
		return
	}
	if r.disp != nil {
		r.disp.Unbind(name, l)
	}
}

// relayRemoval is one handler selected for teardown.
type relayRemoval struct {
	entry *relayEntry
	name  string
	l     *Listener
}

// ListenTo registers l for name on other and records the registration on e,
// so that StopListening can later remove it without the caller keeping
// track of it. other may be any object Bind accepts; invalid targets are
// ignored and nothing is recorded.
func (e *Emitter) ListenTo(other any, name string, l *Listener) *Emitter {
	if l == nil {
		return e
	}
	t := TargetOf(other).attached()
	if !t.Valid() {
		return e
	}
	cid := t.CID()

	e.mu.Lock()
	if e.relay == nil {
		e.relay = make(map[string]*relayEntry)
	}
	entry, ok := e.relay[cid]
	if !ok {
		entry = newRelayEntry(t)
		e.relay[cid] = entry
	}
	entry.events[name] = append(entry.events[name], l)
	e.mu.Unlock()

	// Locks are released before touching other: it may be e itself.
	entry.bind(name, l)
	if em := t.Emitter(); em != nil {
		em.addSubscriber(e)
	}
	return e
}

// StopListening removes relay subscriptions made through ListenTo.
//
// A nil other selects every object e listens to; an other e never listened
// to is a no-op. An empty name selects every event name. A nil l selects
// every handler. Each selected handler is unbound from its object and
// dropped from e's bookkeeping; emptied names and objects are pruned.
func (e *Emitter) StopListening(other any, name string, l *Listener) *Emitter {
	var otherCID string
	if other != nil {
		otherCID = TargetOf(other).knownCID()
		if otherCID == "" {
			return e
		}
	}

	e.mu.Lock()
	if e.relay == nil {
		e.mu.Unlock()
		return e
	}

	var cids []string
	if other != nil {
		if _, ok := e.relay[otherCID]; !ok {
			e.mu.Unlock()
			return e
		}
		cids = []string{otherCID}
	} else {
		cids = make([]string, 0, len(e.relay))
		for cid := range e.relay {
			cids = append(cids, cid)
		}
	}

	var removals []relayRemoval
	var released []*relayEntry
	for _, cid := range cids {
		entry := e.relay[cid]

		var names []string
		if name == "" {
			names = make([]string, 0, len(entry.events))
			for n := range entry.events {
				names = append(names, n)
			}
		} else {
			names = []string{name}
		}

		for _, n := range names {
			handlers := entry.events[n]
			kept := make([]*Listener, 0, len(handlers))
			for _, h := range handlers {
				if l == nil || h == l {
					removals = append(removals, relayRemoval{entry: entry, name: n, l: h})
				} else {
					kept = append(kept, h)
				}
			}
			if len(kept) == 0 {
				delete(entry.events, n)
			} else {
				entry.events[n] = kept
			}
		}

		if len(entry.events) == 0 {
			delete(e.relay, cid)
			released = append(released, entry)
		}
	}
	e.mu.Unlock()

	for _, r := range removals {
		r.entry.unbind(r.name, r.l)
	}
	if len(released) > 0 {
		self := e.CID()
		for _, entry := range released {
			if em := entry.em.Value(); em != nil {
				em.removeSubscriber(self)
			}
		}
	}

	if o := currentObserver(); o != nil && len(removals) > 0 {
		o.RelayStopped(e.CID(), len(removals))
	}
	return e
}

// ListeningTo reports whether e holds relay subscriptions on other.
func (e *Emitter) ListeningTo(other any) bool {
	cid := TargetOf(other).knownCID()
	if cid == "" {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.relay[cid]
	return ok
}

// RelayCount returns how many handlers e has registered on other objects.
func (e *Emitter) RelayCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := 0
	for _, entry := range e.relay {
		for _, handlers := range entry.events {
			n += len(handlers)
		}
	}
	return n
}

// ListenTo makes subscriber listen to name on other. The subscriber's relay
// state lives on its Emitter (or its side-table state for plain objects);
// dispatchers without an Emitter cannot hold relay state and are ignored.
func ListenTo(subscriber, other any, name string, l *Listener) {
	if em := TargetOf(subscriber).attached().Emitter(); em != nil {
		em.ListenTo(other, name, l)
	}
}

// StopListening is the free-function form of Emitter.StopListening.
func StopListening(subscriber, other any, name string, l *Listener) {
	if em := TargetOf(subscriber).Emitter(); em != nil {
		em.StopListening(other, name, l)
	}
}

func (e *Emitter) addSubscriber(sub *Emitter) {
	cid := sub.CID()
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.subscribers == nil {
		e.subscribers = make(map[string]weak.Pointer[Emitter])
	}
	e.subscribers[cid] = weak.Make(sub)
}

func (e *Emitter) removeSubscriber(cid string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.subscribers, cid)
}

// forgetRelay drops e's bookkeeping for a disposed object without unbinding;
// the disposed side has already discarded its registrations.
func (e *Emitter) forgetRelay(cid string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.relay, cid)
}
