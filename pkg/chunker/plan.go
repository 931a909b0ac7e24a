// Copyright 2025 zhengshuai.xiao@outlook.com
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package chunker

import (
	"fmt"

	"github.com/zhengshuai-xiao/xchunker/internal"
)

// Range is the byte range [Start, End) of the chunk at Index (0-based).
type Range struct {
	Index int
	Start int64
	End   int64
}

func (r Range) Len() int64 {
	return r.End - r.Start
}

// Plan is an ordered list of contiguous ranges covering a whole file.
type Plan []Range

// NewPlan cuts [0, fileSize) into ranges of chunkSize bytes. The last range
// holds the remainder. An empty file yields an empty plan.
func NewPlan(fileSize, chunkSize int64) (Plan, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be greater than 0, got %d", internal.ErrInvalidArgument, chunkSize)
	}
	if fileSize < 0 {
		return nil, fmt.Errorf("%w: negative file size %d", internal.ErrInvalidArgument, fileSize)
	}

	count := fileSize / chunkSize
	if fileSize%chunkSize != 0 {
		count++
	}

	plan := make(Plan, 0, count)
	for i := int64(0); i < count; i++ {
		start := i * chunkSize
		end := fileSize
		if fileSize-start > chunkSize {
			end = start + chunkSize
		}
		plan = append(plan, Range{Index: int(i), Start: start, End: end})
	}
	return plan, nil
}

func (p Plan) Count() int {
	return len(p)
}

// Size is the number of bytes the plan covers.
func (p Plan) Size() int64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].End
}
