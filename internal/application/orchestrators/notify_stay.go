package orchestrators

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"bunganutz/internal/adapters/email"
	"bunganutz/internal/domain/stay"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// stayConfirmationMarkdown builds the itinerary body sent to the organizer.
func stayConfirmationMarkdown(s stay.Stay) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Your cottage stay is booked\n\n")
	fmt.Fprintf(&b, "**Dates:** %s to %s\n\n", s.StartDate, s.EndDate)
	fmt.Fprintf(&b, "**Party size:** %d\n\n", s.HeadcountTotal())
	if len(s.ArrivalMeals) > 0 {
		fmt.Fprintf(&b, "First meals on arrival day: %s\n\n", strings.Join(s.ArrivalMeals, ", "))
	}
	if len(s.DepartureMeals) > 0 {
		fmt.Fprintf(&b, "Last meals on departure day: %s\n\n", strings.Join(s.DepartureMeals, ", "))
	}
	fmt.Fprintf(&b, "Sign up for beds and meal duties on the cottage board before you arrive.\n")
	return b.String()
}

// sendStayConfirmation emails the organizer an itinerary. Organizers
// without an email address on file are skipped.
func sendStayConfirmation(ctx context.Context, s stay.Stay, deps ScheduleStayDeps) error {
	organizer, err := deps.MemberStore.GetByID(ctx, s.OrganizerID)
	if err != nil {
		return fmt.Errorf("failed to load organizer: %w", err)
	}
	if organizer.Email == "" {
		return nil
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(stayConfirmationMarkdown(s)), &buf); err != nil {
		return fmt.Errorf("failed to render confirmation: %w", err)
	}

	_, err = deps.EmailSender.Send(ctx, email.SendRequest{
		To:      []string{organizer.Email},
		Subject: fmt.Sprintf("Bunganut Cottage: %s to %s", s.StartDate, s.EndDate),
		HTML:    buf.String(),
	})
	return err
}
