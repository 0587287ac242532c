// Package notes builds the release-notes document from commit metadata.
package notes

import (
	"fmt"
	"strings"

	"github.com/drewfead/relnote/internal/gitx"
)

const ticketTrailer = "tickets:"

// CommitRecord is one row of the rendered document.
type CommitRecord struct {
	Hash       string
	Subject    string
	TicketRefs []string
}

// ExtractTickets pulls ticket tokens out of a commit message body. Every
// line with a case-insensitive "Tickets:" prefix contributes its
// comma-separated tokens. Order is kept, duplicates are kept, and tokens
// are not validated beyond trimming whitespace.
func ExtractTickets(body string) []string {
	var tickets []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < len(ticketTrailer) || !strings.EqualFold(line[:len(ticketTrailer)], ticketTrailer) {
			continue
		}
		for _, token := range strings.Split(line[len(ticketTrailer):], ",") {
			if token = strings.TrimSpace(token); token != "" {
				tickets = append(tickets, token)
			}
		}
	}
	return tickets
}

// BuildRecords converts raw commits into document rows, joining each ticket
// token onto the tracker base URL.
func BuildRecords(commits []gitx.Commit, ticketBase string) []CommitRecord {
	records := make([]CommitRecord, 0, len(commits))
	for _, c := range commits {
		var refs []string
		for _, token := range ExtractTickets(c.Body) {
			refs = append(refs, ticketBase+"/"+token)
		}
		records = append(records, CommitRecord{
			Hash:       c.Hash,
			Subject:    c.Subject,
			TicketRefs: refs,
		})
	}
	return records
}

// Render produces the final markdown document: a version heading and one
// table row per record. Subjects are not escaped; a pipe in a subject will
// corrupt the table.
func Render(version string, records []CommitRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", version)
	b.WriteString("|hash|subject|tickets|\n")
	b.WriteString("|---|-----------|------|\n")
	for _, r := range records {
		fmt.Fprintf(&b, "|%s|%s| %s |\n", r.Hash, r.Subject, strings.Join(r.TicketRefs, " , "))
	}
	return b.String()
}
