package fallback

import (
	"testing"

	"github.com/stretchr/testify/require"

	"travel-agent/internal/catalog"
)

func newDefaultMatcher(t *testing.T) *Matcher {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	m, err := NewMatcher(c)
	require.NoError(t, err)
	return m
}

func TestNewMatcher_Validates(t *testing.T) {
	_, err := NewMatcher(nil)
	require.Error(t, err)

	_, err = NewMatcher(&catalog.Catalog{})
	require.Error(t, err)
}

func TestRespond_Flights(t *testing.T) {
	m := newDefaultMatcher(t)

	out := m.Respond("bangalore to delhi flight")
	require.Contains(t, out, "IndiGo")
	require.Contains(t, out, "2.5 hours")
	require.Contains(t, out, "₹3,000-8,000")

	out = m.Respond("Cheap airline to Bali?")
	require.Contains(t, out, "Budget airlines for international travel")

	out = m.Respond("delhi flight")
	require.Contains(t, out, "For flight bookings, use MakeMyTrip, Goibibo, or Google Flights!")
}

func TestRespond_Europe(t *testing.T) {
	m := newDefaultMatcher(t)

	require.Contains(t, m.Respond("Trip to Europe"), "Best places to visit in Europe")
	require.Contains(t, m.Respond("which place should I visit"), "Best places to visit in Europe")
	require.NotContains(t, m.Respond("a nice place"), "Best places to visit in Europe")
}

func TestRespond_Hotels(t *testing.T) {
	m := newDefaultMatcher(t)

	require.Contains(t, m.Respond("budget accommodation in Rome"), "Budget accommodation tips")
	require.Contains(t, m.Respond("hotel near the beach"), "For hotels, try Booking.com, Agoda")
}

func TestRespond_VisaAndSeason(t *testing.T) {
	m := newDefaultMatcher(t)

	require.Contains(t, m.Respond("Do I need a VISA for Japan"), "Visa tips")
	require.Contains(t, m.Respond("best time for Japan"), "Best travel times")
	require.Contains(t, m.Respond("when to visit Japan"), "Best travel times")
}

func TestRespond_OrderingFirstMatchWins(t *testing.T) {
	m := newDefaultMatcher(t)

	require.Contains(t, m.Respond("flight and hotel package"), "For flight bookings")
	require.Contains(t, m.Respond("europe hotel"), "Best places to visit in Europe")
	require.Contains(t, m.Respond("hotel visa"), "For hotels")
	// "when to visit" contains "visit" but not "place", so Europe does not apply.
	require.Contains(t, m.Respond("visa, and when to visit?"), "Visa tips")
}

func TestRespond_Default(t *testing.T) {
	m := newDefaultMatcher(t)

	out := m.Respond("train to goa")
	require.Contains(t, out, "I'm here to help with your travel plans!")
	require.Contains(t, out, "What would you like to know?")
}

func TestStatic(t *testing.T) {
	s := Static("same")
	require.Equal(t, "same", s.Respond("anything"))
	require.Equal(t, "same", s.Respond(""))
}
