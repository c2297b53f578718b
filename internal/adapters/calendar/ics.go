// Package calendar exports events as iCalendar documents.
package calendar

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"devevent/internal/domain"

	"github.com/emersion/go-ical"
)

const floatingLayout = "20060102T150405"

type renderer struct {
	productID string
	uidDomain string
	now       func() time.Time
}

// NewRenderer returns a domain.CalendarRenderer. Event start times are
// written as floating local times since events carry no time zone.
func NewRenderer(productID, uidDomain string) domain.CalendarRenderer {
	return &renderer{productID: productID, uidDomain: uidDomain, now: time.Now}
}

func (r *renderer) RenderEvent(e *domain.Event) ([]byte, error) {
	start, err := time.Parse("2006-01-02 15:04", e.Date+" "+e.Time)
	if err != nil {
		return nil, fmt.Errorf("event %s start: %w", e.ID, err)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, r.productID)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, e.ID+"@"+r.uidDomain)
	event.Props.SetDateTime(ical.PropDateTimeStamp, r.now().UTC())
	dtstart := ical.NewProp(ical.PropDateTimeStart)
	dtstart.Value = start.Format(floatingLayout)
	event.Props.Set(dtstart)
	event.Props.SetText(ical.PropSummary, e.Title)
	event.Props.SetText(ical.PropDescription, e.Description)
	if loc := joinNonEmpty(", ", e.Venue, e.Location); loc != "" {
		event.Props.SetText(ical.PropLocation, loc)
	}
	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
