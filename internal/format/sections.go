package format

// Section headers shared between the plain-text and Slack reports.
// The emoji shortcodes render natively in Slack and stay readable in a
// terminal.
const (
	SectionDone           = ":white_check_mark: Done:"
	SectionReview         = ":eyes: Moved to review:"
	SectionInProgress     = ":arrows_counterclockwise: In progress / planned (with ETA):"
	SectionOrphanCommits  = ":ghost: Commits without ticket:"
	SectionBlocked        = ":no_entry: Blocked:"
	SectionNeedTasks      = ":jigsaw: Need tasks (Optional):"
	SectionBacklog        = ":card_index: Backlog (assigned, not started):"
	SectionUnknownTickets = ":spiral_note_pad: Commits linked to unknown ticket:"
)
