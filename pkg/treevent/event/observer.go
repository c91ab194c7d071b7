package event

import "sync/atomic"

// Observer receives notifications about registry activity. Implementations
// are called synchronously on the dispatching goroutine and must not
// dispatch events themselves.
type Observer interface {
	// Dispatched is called after a dispatch pass on recv ran handlers handlers.
	Dispatched(recv any, ev *Event, handlers int)

	// RelayStopped is called after StopListening removed relay handlers.
	RelayStopped(subscriber string, removed int)
}

type observerBox struct {
	o Observer
}

var observer atomic.Pointer[observerBox]

// SetObserver installs o process-wide. A nil o disables observation.
func SetObserver(o Observer) {
	if o == nil {
		observer.Store(nil)
		return
	}
	observer.Store(&observerBox{o: o})
}

func currentObserver() Observer {
	if b := observer.Load(); b != nil {
		return b.o
	}
	return nil
}

// Observers fans notifications out to every non-nil observer in order.
func Observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) Dispatched(recv any, ev *Event, handlers int) {
	for _, o := range m {
		o.Dispatched(recv, ev, handlers)
	}
}

func (m multiObserver) RelayStopped(subscriber string, removed int) {
	for _, o := range m {
		o.RelayStopped(subscriber, removed)
	}
}
