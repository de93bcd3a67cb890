package command

import "strings"

// Kind classifies an inbound message. Anything that does not match a known
// token is a plain chat message; unknown slash commands deliberately degrade
// to conversation instead of erroring.
type Kind int

const (
	KindPlainMessage Kind = iota
	KindStart
	KindHelp
	KindExternalLink
	KindNewChat
	KindSummarize
	KindMakeNote
	KindResumeNote
	KindCopyNote
	KindExportDocument
)

// Command is the result of classification. Limit is set for KindSummarize.
type Command struct {
	Kind  Kind
	Limit int
}

const (
	// SummaryAllLimit bounds a "summarize everything" fetch.
	SummaryAllLimit = 1000
	// SummaryRecentLimit is the short-form summary window.
	SummaryRecentLimit = 100
)

// UI action tokens sent by keyboard buttons. Matched exactly.
const (
	ActionResumeNote   = "resume_note"
	ActionCopyNote     = "copy_note"
	ActionExportToWord = "export_to_word"
	ActionBackToMenu   = "back_to_menu"
	ActionMakeNewNote  = "make_new_note"
)

// Classify maps trimmed message text to a command. Slash commands are
// prefix-matched case-insensitively; action tokens are matched exactly.
func Classify(text string) Command {
	lower := strings.ToLower(strings.TrimSpace(text))

	switch lower {
	case ActionBackToMenu:
		return Command{Kind: KindStart}
	case ActionMakeNewNote:
		return Command{Kind: KindMakeNote}
	case ActionResumeNote:
		return Command{Kind: KindResumeNote}
	case ActionCopyNote:
		return Command{Kind: KindCopyNote}
	case ActionExportToWord:
		return Command{Kind: KindExportDocument}
	}

	switch {
	case strings.HasPrefix(lower, "/start"):
		return Command{Kind: KindStart}
	case strings.HasPrefix(lower, "/help"):
		return Command{Kind: KindHelp}
	case strings.HasPrefix(lower, "/youtube"):
		return Command{Kind: KindExternalLink}
	case strings.HasPrefix(lower, "/newchat"):
		return Command{Kind: KindNewChat}
	case strings.HasPrefix(lower, "/summary"):
		limit := SummaryAllLimit
		if strings.Contains(lower, "100") {
			limit = SummaryRecentLimit
		}
		return Command{Kind: KindSummarize, Limit: limit}
	case strings.HasPrefix(lower, "/makenote"):
		return Command{Kind: KindMakeNote}
	}

	return Command{Kind: KindPlainMessage}
}
