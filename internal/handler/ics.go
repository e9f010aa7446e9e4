package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/digennarot/dndScheduler/internal/domain"
	"github.com/digennarot/dndScheduler/internal/slot"
)

const icsTimestampLayout = "20060102T150405"

// icsEscape escapes text per RFC 5545 section 3.3.11.
func icsEscape(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return replacer.Replace(s)
}

// BuildICS renders a single-event calendar for the given slot. Lines are
// CRLF-terminated as RFC 5545 requires. Times are floating local times,
// matching how slots are collected from participants.
func BuildICS(poll *domain.Poll, key slot.Key) (string, error) {
	start, end, err := key.StartEnd(poll.SessionDuration())
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//dndScheduler//EN")
	writeLine("BEGIN:VEVENT")
	writeLine(fmt.Sprintf("UID:%s-%s@dndscheduler", poll.ID, key.String()))
	writeLine("DTSTAMP:" + time.Now().UTC().Format(icsTimestampLayout) + "Z")
	writeLine("DTSTART:" + start.Format(icsTimestampLayout))
	writeLine("DTEND:" + end.Format(icsTimestampLayout))
	writeLine("SUMMARY:" + icsEscape(poll.Title))
	if poll.Location != "" {
		writeLine("LOCATION:" + icsEscape(poll.Location))
	}
	if poll.Description != "" {
		writeLine("DESCRIPTION:" + icsEscape(poll.Description))
	}
	writeLine("END:VEVENT")
	writeLine("END:VCALENDAR")

	return b.String(), nil
}
