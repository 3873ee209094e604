package query

import (
	"fmt"
	"strings"

	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET SUMMARY QUERY
// Counts over the current snapshot, used by the shell's status output.
// ══════════════════════════════════════════════════════════════════════════════

// ClassSummaryDTO summarises one module class.
type ClassSummaryDTO struct {
	Name              string `json:"name"`
	Students          int    `json:"students"`
	Lessons           int    `json:"lessons"`
	AttendanceEntries int    `json:"attendance_entries"`
}

// SummaryDTO summarises a snapshot.
type SummaryDTO struct {
	Students      int               `json:"students"`
	ModuleClasses []ClassSummaryDTO `json:"module_classes"`
}

// String renders the summary as lines of text.
func (d SummaryDTO) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d students, %d classes", d.Students, len(d.ModuleClasses))
	for _, c := range d.ModuleClasses {
		fmt.Fprintf(&b, "\n  %s: %d students, %d lessons, %d attendance entries",
			c.Name, c.Students, c.Lessons, c.AttendanceEntries)
	}
	return b.String()
}

// GetSummaryHandler answers summary queries over a snapshot.
type GetSummaryHandler struct{}

// NewGetSummaryHandler creates the handler.
func NewGetSummaryHandler() *GetSummaryHandler {
	return &GetSummaryHandler{}
}

// Handle summarises t.
func (h *GetSummaryHandler) Handle(t tutorspet.ReadOnlyTutorsPet) SummaryDTO {
	classes := t.ModuleClasses().Items()
	out := SummaryDTO{
		Students:      t.Students().Len(),
		ModuleClasses: make([]ClassSummaryDTO, 0, len(classes)),
	}
	for _, m := range classes {
		c := ClassSummaryDTO{
			Name:     m.Name().String(),
			Students: len(m.StudentIDs()),
			Lessons:  len(m.Lessons()),
		}
		for _, l := range m.Lessons() {
			for _, r := range l.AttendanceRecords().Records() {
				c.AttendanceEntries += r.Len()
			}
		}
		out.ModuleClasses = append(out.ModuleClasses, c)
	}
	return out
}
