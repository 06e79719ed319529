package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_UninstalledIsNoop(t *testing.T) {
	var slot Slot[string, int]

	assert.False(t, slot.Installed())
	assert.Zero(t, slot.Len())
	assert.Nil(t, slot.Handlers())
	assert.NoError(t, slot.Fire("x", 1))

	var nilSlot *Slot[string, int]
	assert.False(t, nilSlot.Installed())
	assert.NoError(t, nilSlot.Fire("x", 1))
}

func TestSlot_InstallLastWriteWins(t *testing.T) {
	var calls []call
	var slot Slot[string, int]

	slot.Install(NewSet([]Handler[string, int]{recorder("first", &calls, nil)}))
	slot.Install(NewSet([]Handler[string, int]{recorder("second", &calls, nil)}))

	require.True(t, slot.Installed())
	require.NoError(t, slot.Fire("x", 1))
	assert.Equal(t, []call{{"second", "x", 1}}, calls)
}

func TestSlot_InstalledEmptySet(t *testing.T) {
	var slot Slot[string, int]
	slot.Install(NewSet[string, int](nil))

	assert.True(t, slot.Installed())
	assert.Zero(t, slot.Len())
	assert.NoError(t, slot.Fire("x", 1))
}

func TestSlot_Reset(t *testing.T) {
	var calls []call
	var slot Slot[string, int]
	slot.Install(NewSet([]Handler[string, int]{recorder("c1", &calls, nil)}))

	slot.Reset()

	assert.False(t, slot.Installed())
	assert.NoError(t, slot.Fire("x", 1))
	assert.Empty(t, calls)
}

func TestSlot_Release(t *testing.T) {
	var slot Slot[string, int]
	first := NewSet[string, int](nil)
	second := NewSet[string, int](nil)

	slot.Install(first)
	slot.Install(second)

	assert.False(t, slot.Release(first), "a replaced set does not empty the slot")
	assert.Same(t, second, slot.Handlers())

	assert.True(t, slot.Release(second))
	assert.False(t, slot.Installed())
	assert.False(t, slot.Release(second))

	var nilSlot *Slot[string, int]
	assert.False(t, nilSlot.Release(first))
}

func TestFireEmpty(t *testing.T) {
	var got []Empty
	var slot Slot[string, Empty]
	slot.Install(NewSet([]Handler[string, Empty]{{
		Name: "h",
		Fn: func(sender string, args Empty) error {
			got = append(got, args)
			return nil
		},
	}}))

	require.NoError(t, FireEmpty(&slot, "post-1"))
	require.NoError(t, slot.Fire("post-1", Empty{}))
	assert.Equal(t, []Empty{{}, {}}, got)

	var unbound Slot[string, Empty]
	assert.NoError(t, FireEmpty(&unbound, "post-1"))
}
