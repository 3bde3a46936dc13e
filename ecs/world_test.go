package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntityMonotonicFromZero(t *testing.T) {
	w := NewWorld(WorldConfig{})
	e0 := CreateEntity(w)
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	assert.Equal(t, Entity(0), e0)
	assert.Equal(t, Entity(1), e1)
	assert.Equal(t, Entity(2), e2)
}

func TestBasicAddRemove(t *testing.T) {
	w := NewWorld(WorldConfig{})
	e0 := CreateEntity(w)

	AddComponent(w, e0, testInt{v: 7})
	got, ok := GetComponent[testInt](w, e0)
	require.True(t, ok)
	assert.Equal(t, 7, got.v)

	RemoveComponent[testInt](w, e0)
	_, ok = GetComponent[testInt](w, e0)
	assert.False(t, ok)
	assert.False(t, HasComponent[testInt](w, e0))
}

func TestAddComponentSecondCallIsNoOp(t *testing.T) {
	w := NewWorld(WorldConfig{})
	e0 := CreateEntity(w)

	AddComponent(w, e0, testInt{v: 1})
	AddComponent(w, e0, testInt{v: 2})

	got, ok := GetComponent[testInt](w, e0)
	require.True(t, ok)
	assert.Equal(t, 1, got.v)
}

func TestRemoveComponentAbsentIsNoOp(t *testing.T) {
	w := NewWorld(WorldConfig{})
	e0 := CreateEntity(w)
	assert.NotPanics(t, func() { RemoveComponent[testInt](w, e0) })
}

func TestGetComponentUnknownTypeIsAbsent(t *testing.T) {
	w := NewWorld(WorldConfig{})
	e0 := CreateEntity(w)
	_, ok := GetComponent[testInt](w, e0)
	assert.False(t, ok)
}

type testVec struct{ x, y float64 }

func TestResourceInsertGetOverwrite(t *testing.T) {
	w := NewWorld(WorldConfig{})

	_, ok := GetResource[testVec](w)
	assert.False(t, ok)

	InsertResource(w, testVec{x: 1, y: 2})
	got, ok := GetResource[testVec](w)
	require.True(t, ok)
	assert.Equal(t, testVec{x: 1, y: 2}, *got)

	InsertResource(w, testVec{x: 9, y: 9})
	got, ok = GetResource[testVec](w)
	require.True(t, ok)
	assert.Equal(t, testVec{x: 9, y: 9}, *got)
}
