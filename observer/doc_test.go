package observer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolff09/tmrverify/observer"
)

func buildSimpleObserver(t *testing.T) (*observer.Observer, *observer.State, *observer.State) {
	t.Helper()
	s0 := observer.NewState("s0", true, false)
	s1 := observer.NewState("s1", false, false)
	sFinal := observer.NewState("final", false, true).WithMarked()
	require.NoError(t, s0.AddTransition(observer.MkEnter("enq", true, observer.DATA), s1))
	require.NoError(t, s1.AddTransition(observer.MkExit(true), sFinal))
	obs, err := observer.NewObserver([]*observer.State{s0, s1, sFinal})
	require.NoError(t, err)
	return obs, s0, sFinal
}

func TestObserverStepsDeterministically(t *testing.T) {
	obs, _, final := buildSimpleObserver(t)
	init := obs.InitialState()
	assert.False(t, init.IsFinal())

	next := init.Next(observer.MkEnter("enq", true, observer.DATA))
	next = next.Next(observer.MkExit(true))
	assert.True(t, next.IsFinal())
	f, ok := next.FindFinal()
	require.True(t, ok)
	assert.Equal(t, final, f)
}

func TestObserverUnmatchedEventSelfLoops(t *testing.T) {
	obs, _, _ := buildSimpleObserver(t)
	init := obs.InitialState()
	next := init.Next(observer.MkExit(true))
	assert.True(t, next.Equal(init))
}

func TestNondeterministicTransitionRejected(t *testing.T) {
	s0 := observer.NewState("s0", true, false)
	s1 := observer.NewState("s1", false, false)
	s2 := observer.NewState("s2", false, false)
	require.NoError(t, s0.AddTransition(observer.MkExit(true), s1))
	err := s0.AddTransition(observer.MkExit(true), s2)
	assert.ErrorIs(t, err, observer.ErrNondeterministic)
}

func TestNewObserverRequiresInitialState(t *testing.T) {
	s0 := observer.NewState("s0", false, false)
	_, err := observer.NewObserver([]*observer.State{s0})
	assert.ErrorIs(t, err, observer.ErrNoInitialState)
}

func TestColorsetIntersects(t *testing.T) {
	a := observer.NewColorset()
	b := observer.NewColorset()
	a.Add(2)
	b.Add(3)
	assert.False(t, a.Intersects(b))
	b.Add(2)
	assert.True(t, a.Intersects(b))
}

func TestMultiStateColorsIntersect(t *testing.T) {
	s0 := observer.NewState("s0", true, false).WithColor(1)
	s1 := observer.NewState("s1", true, false).WithColor(2)
	obs0, err := observer.NewObserver([]*observer.State{s0})
	require.NoError(t, err)
	obs1, err := observer.NewObserver([]*observer.State{s1})
	require.NoError(t, err)
	assert.False(t, obs0.InitialState().ColorsIntersect(obs1.InitialState()))

	s2 := observer.NewState("s2", true, false).WithColor(1)
	obs2, err := observer.NewObserver([]*observer.State{s2})
	require.NoError(t, err)
	assert.True(t, obs0.InitialState().ColorsIntersect(obs2.InitialState()))
}
