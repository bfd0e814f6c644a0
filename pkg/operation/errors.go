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
	"fmt"
)

// 💥 CollisionExhaustedError reports that no free rename destination was found
type CollisionExhaustedError struct {
	Path  string // destination every candidate was derived from
	Limit int    // highest numeric suffix tried
}

func (e *CollisionExhaustedError) Error() string {
	return fmt.Sprintf("no free destination for %s after %d suffixes", e.Path, e.Limit)
}
