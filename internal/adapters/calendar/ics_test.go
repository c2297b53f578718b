package calendar

import (
	"bytes"
	"testing"
	"time"

	"devevent/internal/domain"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_RenderEvent(t *testing.T) {
	r := NewRenderer("-//devevent//events//EN", "devevent.io").(*renderer)
	r.now = func() time.Time { return time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC) }

	out, err := r.RenderEvent(&domain.Event{
		ID:          "ev-1",
		Title:       "GopherCon EU, Berlin",
		Description: "Talks; workshops",
		Venue:       "Festsaal",
		Location:    "Berlin",
		Date:        "2025-06-16",
		Time:        "9:30",
	})
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(out)).Decode()
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "ev-1@devevent.io", ev.Props.Get(ical.PropUID).Value)
	summary, err := ev.Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "GopherCon EU, Berlin", summary)
	location, err := ev.Props.Text(ical.PropLocation)
	require.NoError(t, err)
	assert.Equal(t, "Festsaal, Berlin", location)
	assert.Equal(t, "20250616T093000", ev.Props.Get(ical.PropDateTimeStart).Value)

	start, err := ev.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 16, 9, 30, 0, 0, time.UTC), start)
}

func TestRenderer_InvalidStart(t *testing.T) {
	r := NewRenderer("-//devevent//events//EN", "devevent.io")
	_, err := r.RenderEvent(&domain.Event{ID: "ev-1", Title: "x", Date: "soon", Time: "09:00"})
	require.Error(t, err)
}
