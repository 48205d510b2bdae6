package stream

import (
	"errors"
	"testing"

	"github.com/go-drift/bloc/pkg/bloc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionStateString(t *testing.T) {
	tests := []struct {
		state ConnectionState
		want  string
	}{
		{None, "none"},
		{Waiting, "waiting"},
		{Active, "active"},
		{Done, "done"},
		{ConnectionState(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}

func TestSnapshotVariants(t *testing.T) {
	var s Snapshot[int] = NoneSnapshot[int]{}
	_, ok := Data[int](s)
	assert.False(t, ok)
	assert.Equal(t, None, s.ConnectionState())

	s = ActiveSnapshot[int]{Data: 4}
	v, ok := Data[int](s)
	assert.True(t, ok)
	assert.Equal(t, 4, v)
	assert.Equal(t, Active, s.ConnectionState())

	assert.Equal(t, Waiting, WaitingSnapshot[int]{}.ConnectionState())
	assert.Equal(t, Done, DoneSnapshot[int]{}.ConnectionState())
}

func TestSubjectBroadcastsInOrder(t *testing.T) {
	s := NewSubject[string]()
	var got []string
	s.Subscribe(Observer[string]{OnNext: func(v string) { got = append(got, "a:"+v) }})
	s.Subscribe(Observer[string]{OnNext: func(v string) { got = append(got, "b:"+v) }})

	s.Add("x")

	assert.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestSubjectDispose(t *testing.T) {
	s := NewSubject[int]()
	calls := 0
	d := s.Subscribe(Observer[int]{OnNext: func(int) { calls++ }})

	s.Add(1)
	d.Dispose()
	d.Dispose()
	s.Add(2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Len())
}

func TestSubjectErrorAndClose(t *testing.T) {
	s := NewSubject[int]()
	var errs []error
	done := 0
	s.Subscribe(Observer[int]{
		OnError: func(err error) { errs = append(errs, err) },
		OnDone:  func() { done++ },
	})

	boom := errors.New("boom")
	s.Error(boom)
	s.Close()
	s.Close()
	s.Add(1)

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], boom)
	assert.Equal(t, 1, done)

	late := 0
	d := s.Subscribe(Observer[int]{OnDone: func() { late++ }})
	assert.Equal(t, 1, late)
	assert.NotPanics(t, d.Dispose)
}

func TestNilCallbacksAreSkipped(t *testing.T) {
	s := NewSubject[int]()
	s.Subscribe(Observer[int]{})
	assert.NotPanics(t, func() {
		s.Add(1)
		s.Error(errors.New("x"))
		s.Close()
	})
}

func TestOnceAndEmpty(t *testing.T) {
	calls := 0
	d := Once(DisposeFunc(func() { calls++ }))
	d.Dispose()
	d.Dispose()
	assert.Equal(t, 1, calls)

	assert.NotPanics(t, Empty.Dispose)
	assert.NotPanics(t, Once(nil).Dispose)
	assert.NotPanics(t, DisposeFunc(nil).Dispose)
}

func TestFromBloc(t *testing.T) {
	b := bloc.New(1)
	var got []int
	d := FromBloc(b).Subscribe(Observer[int]{OnNext: func(v int) { got = append(got, v) }})

	b.Emit(2)
	d.Dispose()
	b.Emit(3)

	assert.Equal(t, []int{2}, got)
	assert.Equal(t, 0, b.Len())
}
