package event

import (
	"runtime"
	"testing"
	"time"
	"weak"

	"github.com/stretchr/testify/assert"
)

func TestQueriesDoNotTrackPlainObjects(t *testing.T) {
	type item struct{ n int }
	sub := &Emitter{}
	tracked, tokens := plain.Len(), cids.Len()

	for i := range 100 {
		obj := &item{n: i}
		assert.False(t, sub.ListeningTo(obj))
		sub.StopListening(obj, "", nil)
		TriggerName(obj, "x", false)
		Unbind(obj, "x", nil)
		StopListening(obj, nil, "", nil)
		Dispose(obj)
	}

	assert.Equal(t, tracked, plain.Len())
	assert.Equal(t, tokens, cids.Len())
}

func TestBindTracksUntilDispose(t *testing.T) {
	type item struct{ n int }
	obj := &item{}
	tracked := Tracked()

	Bind(obj, "x", Func(func(*Event, ...any) {}))
	One(obj, "y", Func(func(*Event, ...any) {}))
	assert.Equal(t, tracked+1, Tracked())

	Dispose(obj)
	assert.Equal(t, tracked, Tracked())
	assert.Empty(t, knownCID(obj))
}

// listenToShortLived makes sub listen to an emitter nothing else references.
func listenToShortLived(sub *Emitter) weak.Pointer[Emitter] {
	other := &Emitter{}
	sub.ListenTo(other, "x", Func(func(*Event, ...any) {}))
	return weak.Make(other)
}

// subscribeShortLived makes an unreferenced subscriber listen to other.
func subscribeShortLived(other *Emitter) weak.Pointer[Emitter] {
	sub := &Emitter{}
	sub.ListenTo(other, "x", Func(func(*Event, ...any) {}))
	return weak.Make(sub)
}

func collected(w weak.Pointer[Emitter]) func() bool {
	return func() bool {
		runtime.GC()
		return w.Value() == nil
	}
}

func TestRelayDoesNotRetainOther(t *testing.T) {
	sub := &Emitter{}
	w := listenToShortLived(sub)

	assert.Eventually(t, collected(w), 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, sub.RelayCount())

	assert.NotPanics(t, func() { sub.StopListening(nil, "", nil) })
	assert.Equal(t, 0, sub.RelayCount())
}

func TestListenedToDoesNotRetainSubscriber(t *testing.T) {
	other := &Emitter{}
	w := subscribeShortLived(other)

	assert.Eventually(t, collected(w), 2*time.Second, 10*time.Millisecond)
	assert.NotPanics(t, other.Dispose)
}
