package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestState_Constants_HaveExpectedStringValues(t *testing.T) {
	assert.Equal(t, RequestState("queued"), StateQueued)
	assert.Equal(t, RequestState("in-service"), StateInService)
	assert.Equal(t, RequestState("served"), StateServed)
	assert.Equal(t, RequestState("lost"), StateLost)
}

func TestNewRequest_DefaultState_IsQueued(t *testing.T) {
	// GIVEN any valid required fields
	arrival := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)

	// WHEN NewRequest is called
	req := NewRequest(3, arrival, "A95", 20.5, SideRight)

	// THEN fields match and the request is queued and unresolved
	assert.Equal(t, 3, req.ID)
	assert.Equal(t, arrival, req.ArrivalTime)
	assert.Equal(t, "A95", req.Brand)
	assert.Equal(t, 20.5, req.Volume)
	assert.Equal(t, SideRight, req.Side)
	assert.Equal(t, StateQueued, req.State)
	assert.False(t, req.Resolved())
}

func TestRequest_MarkLost_ThenMarkServed_Panics(t *testing.T) {
	req := NewRequest(1, time.Time{}, "A92", 10, SideLeft)
	req.MarkLost()
	assert.True(t, req.Lost())
	assert.Panics(t, func() { req.MarkServed() })
}

func TestRequest_MarkServed_Twice_Panics(t *testing.T) {
	req := NewRequest(1, time.Time{}, "A92", 10, SideLeft)
	req.MarkServed()
	assert.True(t, req.Served())
	assert.Panics(t, func() { req.MarkServed() })
}

func TestRequest_WaitTime(t *testing.T) {
	arrival := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)
	req := NewRequest(1, arrival, "A92", 10, SideLeft)

	// GIVEN a request that never started service
	// THEN wait time is zero
	assert.Equal(t, time.Duration(0), req.WaitTime())

	// WHEN service starts 90 seconds after arrival
	req.markInService(arrival.Add(90 * time.Second))

	// THEN wait time is 90 seconds
	assert.Equal(t, 90*time.Second, req.WaitTime())
	assert.Equal(t, StateInService, req.State)
}

func TestRequest_String_IncludesBrandVolumeAndSide(t *testing.T) {
	req := NewRequest(12, time.Date(2026, 1, 7, 8, 5, 0, 0, time.UTC), "Diesel", 33.333, SideLeft)
	assert.Equal(t, "car #12 [Diesel] 33.3 L, arrived 2026-01-07 08:05, side=Left", req.String())
}

func TestTankSide_String(t *testing.T) {
	assert.Equal(t, "Left", SideLeft.String())
	assert.Equal(t, "Right", SideRight.String())
	assert.Equal(t, "TankSide(9)", TankSide(9).String())
}
