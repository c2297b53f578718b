package email

import (
	"testing"

	"devevent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_BookingConfirmation(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	data := &domain.BookingConfirmationEmailData{
		Email:      "dev@example.com",
		EventTitle: "Rock & Roll <Conf>",
		EventSlug:  "rock-roll-conf",
		Date:       "2025-06-15",
		Time:       "18:00",
		Venue:      "Main Hall",
		Location:   "Berlin",
		Mode:       "offline",
	}
	subject, html, text, err := r.Render("booking_confirmation", data)
	require.NoError(t, err)
	assert.Equal(t, "You're booked for Rock & Roll <Conf>", subject)
	assert.Contains(t, html, "Rock &amp; Roll &lt;Conf&gt;")
	assert.Contains(t, html, `href="/events/rock-roll-conf"`)
	assert.Contains(t, text, "When:  2025-06-15 at 18:00")
	assert.Contains(t, text, "Main Hall, Berlin (offline)")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	_, _, _, err = r.Render("missing", nil)
	require.Error(t, err)
}
