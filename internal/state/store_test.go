package state

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type counter struct {
	Value   int
	Loading bool
	Err     string
	History []int
}

func reduceCounter(prev counter, a Action) counter {
	switch a.Type {
	case "add/pending":
		prev.Loading = true
	case "add/fulfilled":
		prev.Loading = false
		prev.Value += a.Payload.(int)
		prev.History = Append(prev.History, prev.Value)
	case "add/rejected":
		prev.Loading = false
		prev.Err = a.Err.Error()
	}
	return prev
}

func TestDispatch_Lifecycle(t *testing.T) {
	s := NewStore(counter{}, reduceCounter)

	assert.True(t, s.Dispatch(Pending("add")).Loading)

	st := s.Dispatch(Fulfilled("add", 3))
	assert.False(t, st.Loading)
	assert.Equal(t, 3, st.Value)

	st = s.Dispatch(Rejected("add", errors.New("nope")))
	assert.Equal(t, "nope", st.Err)
	assert.Equal(t, 3, s.State().Value)
}

func TestDispatch_UnknownActionKeepsState(t *testing.T) {
	s := NewStore(counter{Value: 5}, reduceCounter)

	st := s.Dispatch(Action{Type: "other"})

	assert.Equal(t, 5, st.Value)
}

func TestSnapshotsAreNotMutatedByLaterDispatch(t *testing.T) {
	s := NewStore(counter{}, reduceCounter)
	s.Dispatch(Fulfilled("add", 1))
	before := s.State()

	s.Dispatch(Fulfilled("add", 1))

	assert.Equal(t, []int{1}, before.History)
	assert.Equal(t, []int{1, 2}, s.State().History)
}

func TestSubscribe(t *testing.T) {
	s := NewStore(counter{}, reduceCounter)
	var seen []int
	unsubscribe := s.Subscribe(func(c counter) { seen = append(seen, c.Value) })

	s.Dispatch(Fulfilled("add", 2))
	unsubscribe()
	s.Dispatch(Fulfilled("add", 2))

	assert.Equal(t, []int{2}, seen)
}

func TestConcurrentDispatch(t *testing.T) {
	s := NewStore(counter{}, reduceCounter)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(Fulfilled("add", 1))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.State().Value)
}

func TestSliceHelpers(t *testing.T) {
	items := []int{1, 2, 3, 2}

	assert.Equal(t, []int{1, 3}, Without(items, func(v int) bool { return v == 2 }))
	assert.Equal(t, []int{1, 9, 3, 2}, Replace(items, func(v int) bool { return v == 2 }, 9))
	assert.Equal(t, []int{1, 2, 3, 2}, items)
}
