package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectiveAdvancesInOrder(t *testing.T) {
	var o Objective

	assert.False(t, o.Advance(PlacePresents), "cannot skip ahead")
	assert.True(t, o.Advance(EnterHouse))
	assert.True(t, o.Entered)
	assert.Equal(t, PlacePresents, o.Stage)

	assert.False(t, o.Advance(EnterHouse), "cannot replay a finished stage")
	assert.True(t, o.Advance(PlacePresents))
	assert.True(t, o.Delivered)

	assert.True(t, o.Advance(LeaveHouse))
	assert.True(t, o.Left)
	assert.Equal(t, Done, o.Stage)
}

func TestObjectiveDoneIsTerminal(t *testing.T) {
	o := Objective{Stage: Done, Entered: true, Delivered: true, Left: true}
	for _, from := range []ObjectiveStage{EnterHouse, PlacePresents, LeaveHouse, Done} {
		assert.False(t, o.Advance(from))
	}
	assert.Equal(t, Done, o.Stage)
	assert.True(t, o.Delivered)
}
