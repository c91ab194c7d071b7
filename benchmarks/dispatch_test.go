package benchmarks

import (
	"testing"

	"github.com/randalmurphal/treevent/pkg/treevent/event"
)

func noop() *event.Listener {
	return event.Func(func(*event.Event, ...any) {})
}

func benchmarkDispatch(b *testing.B, handlers int) {
	var e event.Emitter
	for i := 0; i < handlers; i++ {
		e.On("change", noop())
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Dispatch("change", i)
	}
}

// BenchmarkDispatch_1 dispatches to a single handler.
func BenchmarkDispatch_1(b *testing.B) { benchmarkDispatch(b, 1) }

// BenchmarkDispatch_10 dispatches to ten handlers.
func BenchmarkDispatch_10(b *testing.B) { benchmarkDispatch(b, 10) }

// BenchmarkDispatch_100 dispatches to a hundred handlers.
func BenchmarkDispatch_100(b *testing.B) { benchmarkDispatch(b, 100) }

// BenchmarkOne registers and fires a one-shot handler.
func BenchmarkOne(b *testing.B) {
	var e event.Emitter
	l := noop()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.One("x", l)
		e.Dispatch("x")
	}
}

// BenchmarkListenToStopListening subscribes to and releases 10 objects.
func BenchmarkListenToStopListening(b *testing.B) {
	others := make([]*event.Emitter, 10)
	for i := range others {
		others[i] = &event.Emitter{}
	}
	var view event.Emitter
	l := noop()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, o := range others {
			view.ListenTo(o, "change", l)
		}
		view.StopListening(nil, "", nil)
	}
}

// BenchmarkTrigger_PlainObject triggers through the side-table emitter.
func BenchmarkTrigger_PlainObject(b *testing.B) {
	type plain struct{ n int }
	p := &plain{}
	event.Bind(p, "x", noop())
	defer event.Dispose(p)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		event.TriggerName(p, "x", false)
	}
}
