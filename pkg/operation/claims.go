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

package operation

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/walteh/repren/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// MaxCollisionSuffix is the highest numeric suffix tried for a rename
const MaxCollisionSuffix = 10000

// 🔖 ClaimSet records the rename destinations taken during one run
type ClaimSet struct {
	claimed map[string]struct{}
}

// 🏭 NewClaimSet creates an empty claim set
func NewClaimSet() *ClaimSet {
	return &ClaimSet{claimed: make(map[string]struct{})}
}

// Claim marks path as taken
func (c *ClaimSet) Claim(path string) {
	c.claimed[filepath.Clean(path)] = struct{}{}
}

// Claimed reports whether path is taken
func (c *ClaimSet) Claimed(path string) bool {
	_, ok := c.claimed[filepath.Clean(path)]
	return ok
}

// Len returns the number of claims
func (c *ClaimSet) Len() int {
	return len(c.claimed)
}

// 🔍 Resolve returns dst, or dst with the smallest ".N" suffix, that is
// neither on disk nor claimed. The result is not claimed.
func (c *ClaimSet) Resolve(ctx context.Context, files status.FileManager, dst string) (string, error) {
	for i := 0; i <= MaxCollisionSuffix; i++ {
		candidate := dst
		if i > 0 {
			candidate = fmt.Sprintf("%s.%d", dst, i)
		}
		if c.Claimed(candidate) {
			continue
		}
		exists, err := files.FileExists(ctx, candidate)
		if err != nil {
			return "", errors.Errorf("checking destination: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", &CollisionExhaustedError{Path: dst, Limit: MaxCollisionSuffix}
}
