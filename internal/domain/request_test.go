package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() PlanningInput {
	return PlanningInput{
		OriginName:    " Home ",
		OriginAddress: "1 Main St",
		DepartureTime: "08:00",
		Destinations: []DestinationInput{
			{Name: "A", Address: "2 Elm St", RequestedBy: "08:30"},
			{Name: "B", Address: "3 Oak St"},
		},
	}
}

func TestNewPlanningRequest(t *testing.T) {
	req, err := NewPlanningRequest(validInput(), 6)
	require.NoError(t, err)

	assert.Equal(t, "Home", req.OriginName)
	assert.Equal(t, "08:00:00", req.DepartAt.Format(ArrivalLayout))
	require.Len(t, req.Destinations, 2)
	require.NotNil(t, req.Destinations[0].RequestedBy)
	assert.Equal(t, "08:30", req.Destinations[0].RequestedBy.Format(ClockLayout))
	assert.Nil(t, req.Destinations[1].RequestedBy)
}

func TestNewPlanningRequestDefaultsOriginName(t *testing.T) {
	in := validInput()
	in.OriginName = ""

	req, err := NewPlanningRequest(in, 0)
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", req.OriginName)
}

func TestNewPlanningRequestAllowsNoDestinations(t *testing.T) {
	in := validInput()
	in.Destinations = nil

	req, err := NewPlanningRequest(in, 6)
	require.NoError(t, err)
	assert.Empty(t, req.Destinations)
}

func TestNewPlanningRequestCollectsProblems(t *testing.T) {
	count := 3
	in := PlanningInput{
		DepartureTime:    "25:99",
		DestinationCount: &count,
		Destinations: []DestinationInput{
			{Name: "", Address: "x", RequestedBy: "soon"},
		},
	}

	_, err := NewPlanningRequest(in, 6)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequest)

	var rerr *RequestError
	require.True(t, errors.As(err, &rerr))
	joined := strings.Join(rerr.Problems, "\n")
	assert.Contains(t, joined, "origin address is required")
	assert.Contains(t, joined, "departure time")
	assert.Contains(t, joined, "destination count 3 does not match 1")
	assert.Contains(t, joined, "destination 1: name is required")
	assert.Contains(t, joined, "destination 1: requested-by time")
}

func TestNewPlanningRequestEnforcesMaxDestinations(t *testing.T) {
	in := validInput()
	for i := 0; i < 5; i++ {
		in.Destinations = append(in.Destinations, DestinationInput{Name: "X", Address: "Y"})
	}

	_, err := NewPlanningRequest(in, 6)
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("07:45:30")
	require.NoError(t, err)
	assert.Equal(t, "07:45:30", got.Format(ArrivalLayout))

	_, err = ParseClock("7pm")
	assert.Error(t, err)
}
