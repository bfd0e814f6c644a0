package status

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFileFormatter_FormatFileInfo(t *testing.T) {
	tests := []struct {
		name        string
		info        FileInfo
		want        string
		description string
	}{
		{
			name:        "modified_file",
			info:        FileInfo{Path: "config.yaml", Status: StatusModified, Matched: true, MatchCount: 2},
			want:        "📝 Modified config.yaml (2 matches)",
			description: "should show modification symbol for changed files",
		},
		{
			name:        "modified_and_renamed",
			info:        FileInfo{Path: "a.txt", Status: StatusModified, MatchCount: 1, RenamedTo: "b.txt"},
			want:        "📝 Modified a.txt (1 matches) -> b.txt",
			description: "should show the new path for moved files",
		},
		{
			name:        "renamed_file",
			info:        FileInfo{Path: "a.txt", Status: StatusRenamed, RenamedTo: "b.txt"},
			want:        "🚚 Renamed a.txt -> b.txt",
			description: "should show rename symbol for moved files",
		},
		{
			name:        "restored_file",
			info:        FileInfo{Path: "a.txt", Status: StatusRestored},
			want:        "⏪ Restored a.txt",
			description: "should show restore symbol for undone files",
		},
		{
			name:        "removed_backup",
			info:        FileInfo{Path: "a.txt.orig", Status: StatusRemoved},
			want:        "🗑️  Removed a.txt.orig",
			description: "should show removal symbol for deleted backups",
		},
		{
			name:        "unchanged_file",
			info:        FileInfo{Path: "stable.txt", Status: StatusUnchanged},
			want:        "👍 Unchanged stable.txt",
			description: "should show unchanged symbol for stable files",
		},
		{
			name:        "failed_file",
			info:        FileInfo{Path: "error.txt", Status: StatusFailed, Error: fmt.Errorf("denied")},
			want:        "❌ Failed error.txt: denied",
			description: "should show error symbol for failed files",
		},
		{
			name:        "dry_run",
			info:        FileInfo{Path: "a.txt", Status: StatusRenamed, RenamedTo: "b.txt", DryRun: true},
			want:        "(dry run) 🚚 Renamed a.txt -> b.txt",
			description: "should mark dry run events",
		},
	}

	formatter := NewDefaultFileFormatter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatter.FormatFileInfo(tt.info)
			assert.Equal(t, tt.want, got, tt.description)
		})
	}
}

func TestDefaultFileFormatter_FormatProgress(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{name: "start", current: 0, total: 10, want: "⏳ Progress: 0/10 (0%)"},
		{name: "half", current: 5, total: 10, want: "⏳ Progress: 5/10 (50%)"},
		{name: "done", current: 10, total: 10, want: "✅ Progress: 10/10 (100%)"},
		{name: "empty", current: 0, total: 0, want: "✅ Progress: 0/0 (0%)"},
	}

	formatter := NewDefaultFileFormatter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatter.FormatProgress(tt.current, tt.total))
		})
	}
}

func TestDefaultFileFormatter_FormatError(t *testing.T) {
	formatter := NewDefaultFileFormatter()
	assert.Equal(t, "", formatter.FormatError(nil))
	assert.Equal(t, "❌ Error: bad", formatter.FormatError(fmt.Errorf("bad")))
}
