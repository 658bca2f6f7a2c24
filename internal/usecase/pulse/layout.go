package pulse

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	maxBaseLength = 64
	defaultBase   = "meeting"
)

// RunIdentity names one run and the artifacts it produces
type RunIdentity struct {
	RunID     string
	Timestamp string
	Short     string
	Date      string
	Time      string
	Zone      string
	Base      string
	Folder    string
}

// NewRunIdentity derives the run id, folder and file base of a run started
// at now. Date and time are rendered in loc.
func NewRunIdentity(now time.Time, loc *time.Location, runName, meetingType, short string) RunIdentity {
	local := now.In(loc)
	ts := local.Format("2006-01-02_150405")
	date := local.Format("2006-01-02")
	clock := local.Format("150405")

	label := runName
	if label == "" {
		label = meetingType
	}
	base := Slugify(label)

	return RunIdentity{
		RunID:     ts + "_" + short,
		Timestamp: ts,
		Short:     short,
		Date:      date,
		Time:      clock,
		Zone:      zoneLabel(loc),
		Base:      base,
		Folder:    fmt.Sprintf("%s_%s_%s_%s", date, clock, base, short),
	}
}

func zoneLabel(loc *time.Location) string {
	if loc.String() == "America/New_York" {
		return "NY"
	}
	return loc.String()
}

// NewShortID returns 8 random lowercase hex characters
func NewShortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Slugify turns a run name or meeting type into a file-safe base name
func Slugify(label string) string {
	s := slug.Make(strings.ReplaceAll(label, "_", " "))
	if len(s) > maxBaseLength {
		s = strings.TrimRight(s[:maxBaseLength], "-")
	}
	if s == "" {
		return defaultBase
	}
	return s
}

// NotesMarkdown renders the archived copy of the meeting notes
func NotesMarkdown(id RunIdentity, meetingType, runName, notes string) string {
	runLine := "- Run name: (none)"
	if runName != "" {
		runLine = "- Run name: " + runName
	}

	return strings.Join([]string{
		"# Meeting notes",
		"",
		"- Date (" + id.Zone + "): " + id.Date,
		"- Time (" + id.Zone + "): " + id.Time,
		"- Meeting type: " + meetingType,
		runLine,
		"- Run id: " + id.RunID,
		"",
		"## Notes",
		"",
		notes,
		"",
	}, "\n")
}
