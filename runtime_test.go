package asyncrt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// sleepThen sleeps for d, then yields value.
type sleepThen struct {
	sleep Future[struct{}]
	value int
}

func (s *sleepThen) Poll(cx *Context) (int, bool) {
	if _, ok := s.sleep.Poll(cx); !ok {
		return 0, false
	}
	return s.value, true
}

func sleepThenValue(d time.Duration, value int) Future[int] {
	return &sleepThen{sleep: Sleep(d), value: value}
}

// immediate completes on its very first poll.
type immediate[O any] struct{ value O }

func (f immediate[O]) Poll(cx *Context) (O, bool) { return f.value, true }

// TestP1_JoinReturnsExactlyNEntries: spawn followed by join on N tasks
// that each complete returns a mapping of exactly N entries, one per
// task id.
func TestP1_JoinReturnsExactlyNEntries(t *testing.T) {
	rt := New[int]()
	const n = 10
	ids := make(map[uint64]bool, n)
	for i := 0; i < n; i++ {
		id := rt.Spawn(immediate[int]{value: i})
		ids[id] = true
	}

	result := rt.Join()
	require.Len(t, result, n)
	for id := range ids {
		_, ok := result[id]
		require.True(t, ok, "missing entry for id %d", id)
	}
}

// TestP2_AutoAssignedIDsNeverCollide: auto-assigned ids produced by
// consecutive spawn calls are pairwise distinct and never collide with
// ids previously passed to spawn_with_id.
func TestP2_AutoAssignedIDsNeverCollide(t *testing.T) {
	rt := New[int]()
	_, err := rt.SpawnWithID(2, immediate[int]{value: 0})
	require.NoError(t, err)

	seen := map[uint64]bool{2: true}
	for i := 0; i < 5; i++ {
		id := rt.Spawn(immediate[int]{value: i})
		require.False(t, seen[id], "id %d collided with a previously used id", id)
		seen[id] = true
	}
	rt.Join()
}

// TestP3_EarlierDeadlineCompletesFirst: for any two Sleeps with
// wall-clock-distinct deadlines spawned in the same Runtime, the one
// with the earlier deadline completes first.
func TestP3_EarlierDeadlineCompletesFirst(t *testing.T) {
	rt := New[int]()
	rt.Spawn(sleepThenValue(150*time.Millisecond, 1))
	rt.Spawn(sleepThenValue(20*time.Millisecond, 2))

	v, ok := rt.Select()
	require.True(t, ok)
	require.Equal(t, 2, v, "the earlier-deadline sleep must win select")
}

// TestP4_SelectReturnsExactlyOneValue: select returns the value of
// exactly one task and discards the others.
func TestP4_SelectReturnsExactlyOneValue(t *testing.T) {
	rt := New[int]()
	rt.Spawn(immediate[int]{value: 1})
	rt.Spawn(immediate[int]{value: 2})
	rt.Spawn(immediate[int]{value: 3})

	v, ok := rt.Select()
	require.True(t, ok)
	require.Contains(t, []int{1, 2, 3}, v)
}

// TestP5_CompletedBodyNeverPolledAgain: polling a completed Task body
// cannot occur.
func TestP5_CompletedBodyNeverPolledAgain(t *testing.T) {
	ready := make(chan *task[int], 1)
	pollCount := 0
	f := FutureFunc[int](func(cx *Context) (int, bool) {
		pollCount++
		return 1, true
	})
	tk := newTask(1, f, ready, nil, nil)

	tk.poll()
	tk.poll() // body slot is nil; must not invoke f again
	require.Equal(t, 1, pollCount)
}

// TestP6_WakeDuringPollCausesReEnqueue: a wakeup fired during an ongoing
// poll causes at least one subsequent poll of the same Task.
func TestP6_WakeDuringPollCausesReEnqueue(t *testing.T) {
	ready := make(chan *task[int], 2)
	var tk *task[int]
	polls := 0
	f := FutureFunc[int](func(cx *Context) (int, bool) {
		polls++
		if polls == 1 {
			// Simulate an external event firing the waker while this
			// poll is still in flight — before this poll call returns.
			cx.Waker().Wake()
			return 0, false
		}
		return 42, true
	})
	tk = newTask(1, f, ready, nil, nil)

	tk.poll() // first poll: Pending, but woke itself mid-poll
	require.Equal(t, 1, len(ready), "the in-flight wake must have re-enqueued the task")

	<-ready
	v, completed, polled := tk.poll()
	require.True(t, polled)
	require.True(t, completed)
	require.Equal(t, 42, v)
}

// TestP7_SpawnWithIDDuplicateHasNoSideEffect: spawn_with_id returns
// DuplicateId iff the id is already in the registry, and has no side
// effect in that case.
func TestP7_SpawnWithIDDuplicateHasNoSideEffect(t *testing.T) {
	rt := New[int]()
	_, err := rt.SpawnWithID(7, immediate[int]{value: 1})
	require.NoError(t, err)

	_, err = rt.SpawnWithID(7, immediate[int]{value: 2})
	require.Error(t, err)
	var dupErr *DuplicateIDError
	require.ErrorAs(t, err, &dupErr)
	require.Equal(t, uint64(7), dupErr.ID)

	result := rt.Join()
	require.Len(t, result, 1)
	require.Equal(t, 1, result[7])
}

// TestP8_JoinOnEmptyRuntimeReturnsEmptyMapping: join on a Runtime with
// zero spawns returns an empty mapping.
func TestP8_JoinOnEmptyRuntimeReturnsEmptyMapping(t *testing.T) {
	rt := New[int]()
	result := rt.Join()
	require.Empty(t, result)
}

// TestS1_SelectPicksTheFaster mirrors scenario S1.
func TestS1_SelectPicksTheFaster(t *testing.T) {
	rt := New[int]()
	rt.Spawn(sleepThenValue(500*time.Millisecond, 1))
	rt.Spawn(sleepThenValue(150*time.Millisecond, 2))

	start := time.Now()
	v, ok := rt.Select()
	elapsed := time.Since(start)

	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Less(t, elapsed, 400*time.Millisecond)
}

// TestS2_JoinGathersBoth mirrors scenario S2.
func TestS2_JoinGathersBoth(t *testing.T) {
	rt := New[int]()
	id1, err := rt.SpawnWithID(1, sleepThenValue(150*time.Millisecond, 50))
	require.NoError(t, err)
	id2, err := rt.SpawnWithID(2, &nestedSleep{first: 80 * time.Millisecond, second: 80 * time.Millisecond, value: 100})
	require.NoError(t, err)

	result := rt.Join()
	require.Len(t, result, 2)
	require.Equal(t, 50, result[id1])
	require.Equal(t, 100, result[id2])
}

// nestedSleep sleeps for `first`, then `second`, then yields value —
// exercising a Future that re-registers with Sleep across two stages.
type nestedSleep struct {
	first, second time.Duration
	value         int
	stage         int
	sleep         Future[struct{}]
}

func (n *nestedSleep) Poll(cx *Context) (int, bool) {
	switch n.stage {
	case 0:
		n.sleep = Sleep(n.first)
		n.stage = 1
		fallthrough
	case 1:
		if _, ok := n.sleep.Poll(cx); !ok {
			return 0, false
		}
		n.sleep = Sleep(n.second)
		n.stage = 2
		fallthrough
	default:
		if _, ok := n.sleep.Poll(cx); !ok {
			return 0, false
		}
		return n.value, true
	}
}

// TestS3_DuplicateIDRejected mirrors scenario S3.
func TestS3_DuplicateIDRejected(t *testing.T) {
	rt := New[int]()
	_, err := rt.SpawnWithID(7, immediate[int]{value: 1})
	require.NoError(t, err)

	_, err = rt.SpawnWithID(7, immediate[int]{value: 2})
	require.Error(t, err)

	result := rt.Join()
	require.Len(t, result, 1)
	_, ok := result[7]
	require.True(t, ok)
}

// TestS4_AutoIDAvoidsCollisions mirrors scenario S4.
func TestS4_AutoIDAvoidsCollisions(t *testing.T) {
	rt := New[int]()
	_, err := rt.SpawnWithID(1, immediate[int]{value: 0})
	require.NoError(t, err)

	id2 := rt.Spawn(immediate[int]{value: 0})
	require.Equal(t, uint64(2), id2)

	id3 := rt.Spawn(immediate[int]{value: 0})
	require.Equal(t, uint64(3), id3)

	rt.Join()
}

// TestS5_ManyConcurrentSleeps mirrors scenario S5.
func TestS5_ManyConcurrentSleeps(t *testing.T) {
	rt := New[int]()
	const n = 100
	for i := 0; i < n; i++ {
		d := time.Duration(1+i%3) * 40 * time.Millisecond
		rt.Spawn(sleepThenValue(d, i))
	}

	start := time.Now()
	result := rt.Join()
	elapsed := time.Since(start)

	require.Len(t, result, n)
	require.Less(t, elapsed, 2*time.Second)
}

// TestS6_EmptyRuntime mirrors scenario S6.
func TestS6_EmptyRuntime(t *testing.T) {
	start := time.Now()
	rt := New[int]()
	v, ok := rt.Select()
	require.False(t, ok)
	require.Zero(t, v)
	require.Less(t, time.Since(start), 100*time.Millisecond)

	start = time.Now()
	rt2 := New[int]()
	result := rt2.Join()
	require.Empty(t, result)
	require.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestRuntime_SelectTwicePanics(t *testing.T) {
	rt := New[int]()
	rt.Spawn(immediate[int]{value: 1})
	rt.Select()

	require.Panics(t, func() { rt.Select() })
}

func TestRuntime_JoinAfterSelectPanics(t *testing.T) {
	rt := New[int]()
	rt.Spawn(immediate[int]{value: 1})
	rt.Select()

	require.Panics(t, func() { rt.Join() })
}

func TestRuntime_Metrics(t *testing.T) {
	rt := New[int](WithMetrics(true))
	rt.Spawn(immediate[int]{value: 1})
	rt.Spawn(immediate[int]{value: 2})
	rt.Join()

	m := rt.Metrics()
	require.Equal(t, int64(2), m.Count)
}

func TestRuntime_MetricsDisabledByDefault(t *testing.T) {
	rt := New[int]()
	rt.Spawn(immediate[int]{value: 1})
	rt.Join()

	m := rt.Metrics()
	require.Zero(t, m.Count)
}
