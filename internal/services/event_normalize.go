package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"devevent/internal/domain"
	"devevent/internal/validation"
)

const (
	minTitleLength       = 3
	minDescriptionLength = 10
)

// NormalizeEvent validates the raw fields of a new event and returns the
// event as it will be stored, without ID or timestamps. Every failing field
// is reported in the returned *domain.ValidationError.
func NormalizeEvent(in *domain.EventInput) (*domain.Event, error) {
	verr := &domain.ValidationError{}
	e := &domain.Event{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Overview:    strings.TrimSpace(in.Overview),
		Image:       strings.TrimSpace(in.Image),
		Venue:       strings.TrimSpace(in.Venue),
		Location:    strings.TrimSpace(in.Location),
		Mode:        domain.EventMode(strings.ToLower(strings.TrimSpace(in.Mode))),
		Audience:    strings.TrimSpace(in.Audience),
		Organizer:   strings.TrimSpace(in.Organizer),
		Agenda:      validation.TrimList(in.Agenda),
		Tags:        validation.UniqueList(validation.TrimList(in.Tags)),
	}
	date := strings.TrimSpace(in.Date)
	clock := strings.TrimSpace(in.Time)

	required := []struct {
		field, label, value string
	}{
		{"title", "Title", e.Title},
		{"description", "Description", e.Description},
		{"overview", "Overview", e.Overview},
		{"image", "Image", e.Image},
		{"venue", "Venue", e.Venue},
		{"location", "Location", e.Location},
		{"date", "Date", date},
		{"time", "Time", clock},
		{"mode", "Mode", string(e.Mode)},
		{"audience", "Audience", e.Audience},
		{"organizer", "Organizer", e.Organizer},
	}
	for _, r := range required {
		if r.value == "" {
			verr.Add(r.field, fmt.Sprintf("%s is required", r.label))
		}
	}

	if e.Title != "" && utf8.RuneCountInString(e.Title) < minTitleLength {
		verr.Add("title", fmt.Sprintf("Title must be at least %d characters", minTitleLength))
	}
	if e.Description != "" && utf8.RuneCountInString(e.Description) < minDescriptionLength {
		verr.Add("description", fmt.Sprintf("Description must be at least %d characters", minDescriptionLength))
	}
	if e.Mode != "" && !e.Mode.Valid() {
		verr.Add("mode", "Mode must be one of online, offline or hybrid")
	}
	if len(e.Agenda) == 0 {
		verr.Add("agenda", "At least one agenda item is required")
	}
	if len(e.Tags) == 0 {
		verr.Add("tags", "At least one tag is required")
	}

	if date != "" {
		d, err := validation.NormalizeDate(date)
		if err != nil {
			verr.Add("date", "Invalid date format, expected a date such as 2025-06-15")
		}
		e.Date = d
	}
	if clock != "" {
		t, err := validation.NormalizeTime(clock)
		if err != nil {
			verr.Add("time", "Invalid time format, expected HH:MM in 24-hour format")
		}
		e.Time = t
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}
	e.Slug = validation.GenerateSlug(e.Title)
	return e, nil
}
