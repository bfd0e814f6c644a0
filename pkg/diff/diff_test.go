// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnified(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		want     string
		contains []string
	}{
		{
			name: "equal",
			a:    "same\n",
			b:    "same\n",
			want: "",
		},
		{
			name: "single_line",
			a:    "hello foo\n",
			b:    "hello bar\n",
			want: "--- a.txt\n+++ a.txt\n@@ -1 +1 @@\n-hello foo\n+hello bar\n",
		},
		{
			name:     "context_lines",
			a:        "1\n2\n3\nfoo\n5\n",
			b:        "1\n2\n3\nbar\n5\n",
			contains: []string{" 3\n", "-foo\n", "+bar\n", " 5\n"},
		},
		{
			name:     "missing_final_newline",
			a:        "foo",
			b:        "bar",
			contains: []string{"-foo\n\\ No newline at end of file\n", "+bar\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unified("a.txt", "a.txt", []byte(tt.a), []byte(tt.b), 0)
			require.NoError(t, err)
			if tt.contains == nil {
				assert.Equal(t, tt.want, got)
				return
			}
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
		})
	}
}

func TestRename(t *testing.T) {
	assert.Equal(t, "rename from a.txt\nrename to b.txt\n", Rename("a.txt", "b.txt"))
}
