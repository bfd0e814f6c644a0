package status

import (
	"fmt"
)

// FileFormatter defines how file events and progress should be formatted
type FileFormatter interface {
	// FormatFileInfo formats a file event message
	FormatFileInfo(info FileInfo) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileInfo formats a file event with emojis
func (f *DefaultFileFormatter) FormatFileInfo(info FileInfo) string {
	prefix := ""
	if info.DryRun {
		prefix = "(dry run) "
	}
	switch info.Status {
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s: %v", info.Path, info.Error)
	case StatusModified:
		if info.RenamedTo != "" {
			return fmt.Sprintf("%s📝 Modified %s (%d matches) -> %s", prefix, info.Path, info.MatchCount, info.RenamedTo)
		}
		return fmt.Sprintf("%s📝 Modified %s (%d matches)", prefix, info.Path, info.MatchCount)
	case StatusRenamed:
		return fmt.Sprintf("%s🚚 Renamed %s -> %s", prefix, info.Path, info.RenamedTo)
	case StatusRestored:
		return fmt.Sprintf("%s⏪ Restored %s", prefix, info.Path)
	case StatusRemoved:
		return fmt.Sprintf("%s🗑️  Removed %s", prefix, info.Path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", info.Path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
