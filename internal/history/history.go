// Package history renders and parses the textual form of a job's status
// history. Transitions are stored as structured rows; the "STATUS HISTORY"
// marker format exists for display and for importing notes written by older
// versions that embedded the history directly in the notes field.
package history

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mwaldman/huntboard/internal/model"
)

// Marker separates free-text user notes from the appended history block.
const Marker = "STATUS HISTORY"

const timestampLayout = "2006-01-02 15:04"

var legacyLine = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}): Changed from '(.*)' to '(.*)'$`)

// FormatLine renders a single transition in the legacy audit-line format.
func FormatLine(t model.StatusTransition) string {
	return fmt.Sprintf("%s: Changed from '%s' to '%s'",
		t.ChangedAt.Format(timestampLayout), t.FromStatus, t.ToStatus)
}

// FormatNotes combines free-text notes with the transition history under a
// single marker, oldest transition first. With no transitions the notes come
// back untouched; the marker never appears twice.
func FormatNotes(userNotes string, transitions []model.StatusTransition) string {
	if len(transitions) == 0 {
		return userNotes
	}

	var b strings.Builder
	b.WriteString(userNotes)
	b.WriteString("\n\n")
	b.WriteString(Marker)
	for _, t := range transitions {
		b.WriteString("\n")
		b.WriteString(FormatLine(t))
	}
	return b.String()
}

// SplitNotes separates combined text into the user-authored part and the
// history block. Text without a marker is all user notes.
func SplitNotes(notes string) (userNotes, historyText string) {
	idx := strings.Index(notes, Marker)
	if idx < 0 {
		return notes, ""
	}
	return strings.TrimRight(notes[:idx], "\n "), strings.TrimSpace(notes[idx+len(Marker):])
}

// ParseLegacy recovers transitions from marker-formatted notes. Lines that
// do not match the audit format are ignored. Returned transitions carry no
// id or job id; the caller assigns those on insert.
func ParseLegacy(notes string) []model.StatusTransition {
	_, historyText := SplitNotes(notes)
	if historyText == "" {
		return nil
	}

	var transitions []model.StatusTransition
	for _, line := range strings.Split(historyText, "\n") {
		m := legacyLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		at, err := time.Parse(timestampLayout, m[1])
		if err != nil {
			continue
		}
		transitions = append(transitions, model.StatusTransition{
			FromStatus: m[2],
			ToStatus:   m[3],
			ChangedAt:  at,
		})
	}
	return transitions
}
