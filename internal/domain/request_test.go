package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{RequestStatusPendingSelection, RequestStatusAwaitingApproval, true},
		{RequestStatusPendingSelection, RequestStatusExpired, true},
		{RequestStatusPendingSelection, RequestStatusApproved, false},
		{RequestStatusPendingSelection, RequestStatusRejected, false},
		{RequestStatusAwaitingApproval, RequestStatusApproved, true},
		{RequestStatusAwaitingApproval, RequestStatusRejected, true},
		{RequestStatusAwaitingApproval, RequestStatusExpired, true},
		{RequestStatusAwaitingApproval, RequestStatusPendingSelection, false},
		{RequestStatusApproved, RequestStatusRejected, false},
		{RequestStatusApproved, RequestStatusExpired, false},
		{RequestStatusRejected, RequestStatusApproved, false},
		{RequestStatusExpired, RequestStatusAwaitingApproval, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestRequestStatus_IsTerminal(t *testing.T) {
	assert.False(t, RequestStatusPendingSelection.IsTerminal())
	assert.False(t, RequestStatusAwaitingApproval.IsTerminal())
	assert.True(t, RequestStatusApproved.IsTerminal())
	assert.True(t, RequestStatusRejected.IsTerminal())
	assert.True(t, RequestStatusExpired.IsTerminal())
}

func TestBookingRequest_IsOpen(t *testing.T) {
	req := &BookingRequest{Status: RequestStatusPendingSelection}
	assert.True(t, req.IsOpen())

	req.Status = RequestStatusAwaitingApproval
	assert.True(t, req.IsOpen())

	req.Status = RequestStatusApproved
	assert.False(t, req.IsOpen())
}

func TestBookingRequest_SelectOffer(t *testing.T) {
	staffID := uuid.New()
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	req := &BookingRequest{
		Status: RequestStatusPendingSelection,
		Offers: []AvailableSlot{
			{StaffID: staffID, StartAt: start, EndAt: end},
			{StaffID: staffID, StartAt: start.Add(time.Hour), EndAt: end.Add(time.Hour)},
		},
	}

	ok := req.SelectOffer(1)
	require.True(t, ok)
	require.NotNil(t, req.ChosenStaffID)
	require.NotNil(t, req.ChosenStartAt)
	require.NotNil(t, req.ChosenEndAt)
	assert.Equal(t, staffID, *req.ChosenStaffID)
	assert.Equal(t, start.Add(time.Hour), *req.ChosenStartAt)
	assert.Equal(t, end.Add(time.Hour), *req.ChosenEndAt)
}

func TestBookingRequest_SelectOffer_OutOfRange(t *testing.T) {
	req := &BookingRequest{
		Status: RequestStatusPendingSelection,
		Offers: []AvailableSlot{
			{StaffID: uuid.New(), StartAt: time.Now(), EndAt: time.Now().Add(time.Hour)},
		},
	}

	assert.False(t, req.SelectOffer(-1))
	assert.False(t, req.SelectOffer(1))
	assert.False(t, req.SelectOffer(5))

	// Выбор за границами списка не меняет заявку
	assert.Nil(t, req.ChosenStaffID)
	assert.Nil(t, req.ChosenStartAt)
	assert.Nil(t, req.ChosenEndAt)
	assert.Equal(t, RequestStatusPendingSelection, req.Status)
}
