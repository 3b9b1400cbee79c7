// Package format renders candidates and outcomes as chat-ready markdown.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/calbot/internal/core"
)

const (
	timedLayout = "01/02/2006 at 03:04 PM"
	dayLayout   = "01/02/2006"
	dateLayout  = "2006-01-02"
)

type noun struct {
	one, many string
	label     string
	emoji     string
	untitled  string
	browse    string
}

var nouns = map[core.ItemType]noun{
	core.ItemEvent: {
		one: "event", many: "events", label: "Event", emoji: "📅",
		untitled: "Untitled Event", browse: "Here are your upcoming events:",
	},
	core.ItemTask: {
		one: "task", many: "tasks", label: "Task", emoji: "📋",
		untitled: "Untitled Task", browse: "Here are all your tasks:",
	},
}

func nounFor(kind core.ItemType) noun {
	if n, ok := nouns[kind]; ok {
		return n
	}
	return nouns[core.ItemEvent]
}

func title(c core.Candidate) string {
	if c.Title != "" {
		return c.Title
	}
	return nounFor(c.Kind).untitled
}

// Line renders a single bullet for c.
func Line(c core.Candidate) string {
	if c.Kind == core.ItemTask {
		return fmt.Sprintf("• %s (Due: %s)", title(c), due(c))
	}

	switch {
	case c.StartTime != nil:
		return fmt.Sprintf("• %s (%s)", title(c), c.StartTime.Format(timedLayout))
	case c.StartDate != "":
		return fmt.Sprintf("• %s (All day - %s)", title(c), day(c.StartDate))
	default:
		return fmt.Sprintf("• %s (No date specified)", title(c))
	}
}

func due(c core.Candidate) string {
	switch {
	case c.StartDate != "":
		return day(c.StartDate)
	case c.StartTime != nil:
		return c.StartTime.Format(dayLayout)
	default:
		return "No due date"
	}
}

func day(date string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return d.Format(dayLayout)
}

// List renders one bullet per candidate.
func List(cands []core.Candidate) string {
	lines := make([]string, 0, len(cands))
	for _, c := range cands {
		lines = append(lines, Line(c))
	}
	return strings.Join(lines, "\n")
}

// Listing renders a query result under the kind's header.
func Listing(kind core.ItemType, cands []core.Candidate) string {
	n := nounFor(kind)
	header := fmt.Sprintf("%s **Your %ss:**\n\n", n.emoji, n.label)
	if len(cands) == 0 {
		return header + fmt.Sprintf("No %s found for the specified time period.", n.many)
	}
	return header + List(cands)
}

func Found(kind core.ItemType, count int) string {
	return fmt.Sprintf("Found %d %s", count, nounFor(kind).many)
}

func Created(kind core.ItemType, name string) string {
	return fmt.Sprintf("%s '%s' created successfully", nounFor(kind).label, name)
}

func Updated(kind core.ItemType) string {
	return nounFor(kind).label + " updated successfully"
}

func DeletedByID(kind core.ItemType) string {
	return nounFor(kind).label + " deleted successfully"
}

// Message and formatted text pairs for find-and-delete outcomes.

func NothingToDelete(kind core.ItemType) (string, string) {
	n := nounFor(kind)
	return fmt.Sprintf("No %s found to delete.", n.many),
		fmt.Sprintf("%s **No %s found**\n\nThere are no %s available to delete.", n.emoji, n.many, n.many)
}

func NoMatch(kind core.ItemType, desc string, browsed []core.Candidate) (string, string) {
	n := nounFor(kind)
	msg := fmt.Sprintf("No %s found matching '%s'. Here are all your %s:", n.many, desc, n.many)
	formatted := fmt.Sprintf("❌ **No matching %s found**\n\nI couldn't find any %s matching '%s'. %s\n\n%s\n\nPlease specify which %s you'd like to delete.",
		n.many, n.many, desc, n.browse, List(browsed), n.one)
	return msg, formatted
}

func Deleted(kind core.ItemType, c core.Candidate) (string, string) {
	n := nounFor(kind)
	return fmt.Sprintf("%s '%s' deleted successfully.", n.label, title(c)),
		fmt.Sprintf("✅ **%s Deleted**\n\nSuccessfully deleted: %s", n.label, title(c))
}

func Ambiguous(kind core.ItemType, desc string, matches []core.Candidate) (string, string) {
	n := nounFor(kind)
	msg := fmt.Sprintf("Found %d %s matching '%s'. Please specify which one to delete:", len(matches), n.many, desc)
	formatted := fmt.Sprintf("🔍 **Multiple matches found**\n\nFound %d %s matching '%s':\n\n%s\n\nPlease specify which %s you'd like to delete by providing more details.",
		len(matches), n.many, desc, List(matches), n.one)
	return msg, formatted
}

// Noun returns the kind's noun, pluralized unless count is 1.
func Noun(kind core.ItemType, count int) string {
	n := nounFor(kind)
	if count == 1 {
		return n.one
	}
	return n.many
}

// Failed renders a collaborator failure, e.g. "Failed to create event: <err>".
func Failed(action string, err error) string {
	return fmt.Sprintf("Failed to %s: %v", action, err)
}
