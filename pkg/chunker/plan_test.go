package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhengshuai-xiao/xchunker/internal"
)

func TestNewPlan(t *testing.T) {
	testCases := []struct {
		name      string
		fileSize  int64
		chunkSize int64
		expected  []Range
	}{
		{
			name:      "Empty File",
			fileSize:  0,
			chunkSize: 1000,
			expected:  []Range{},
		},
		{
			name:      "Smaller Than Chunk",
			fileSize:  10,
			chunkSize: 1000,
			expected:  []Range{{Index: 0, Start: 0, End: 10}},
		},
		{
			name:      "Exact Multiple",
			fileSize:  2000,
			chunkSize: 1000,
			expected: []Range{
				{Index: 0, Start: 0, End: 1000},
				{Index: 1, Start: 1000, End: 2000},
			},
		},
		{
			name:      "Last Chunk Partial",
			fileSize:  2500,
			chunkSize: 1000,
			expected: []Range{
				{Index: 0, Start: 0, End: 1000},
				{Index: 1, Start: 1000, End: 2000},
				{Index: 2, Start: 2000, End: 2500},
			},
		},
		{
			name:      "One Byte Chunks",
			fileSize:  3,
			chunkSize: 1,
			expected: []Range{
				{Index: 0, Start: 0, End: 1},
				{Index: 1, Start: 1, End: 2},
				{Index: 2, Start: 2, End: 3},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := NewPlan(tc.fileSize, tc.chunkSize)
			require.NoError(t, err)
			assert.Equal(t, Plan(tc.expected), plan)
			assert.Equal(t, len(tc.expected), plan.Count())
			assert.Equal(t, tc.fileSize, plan.Size())
		})
	}
}

func TestNewPlanCoversFile(t *testing.T) {
	for _, fileSize := range []int64{1, 7, 999, 1000, 1001, 65537} {
		for _, chunkSize := range []int64{1, 3, 1000, 4096, 1 << 20} {
			plan, err := NewPlan(fileSize, chunkSize)
			require.NoError(t, err)

			wantCount := (fileSize + chunkSize - 1) / chunkSize
			require.Equal(t, int(wantCount), plan.Count(), "size=%d chunk=%d", fileSize, chunkSize)

			var next int64
			for i, r := range plan {
				assert.Equal(t, i, r.Index)
				assert.Equal(t, next, r.Start)
				assert.Greater(t, r.Len(), int64(0))
				assert.LessOrEqual(t, r.Len(), chunkSize)
				if i < len(plan)-1 {
					assert.Equal(t, chunkSize, r.Len())
				}
				next = r.End
			}
			assert.Equal(t, fileSize, next)
		}
	}
}

func TestNewPlanInvalid(t *testing.T) {
	_, err := NewPlan(100, 0)
	assert.ErrorIs(t, err, internal.ErrInvalidArgument)

	_, err = NewPlan(100, -1)
	assert.ErrorIs(t, err, internal.ErrInvalidArgument)

	_, err = NewPlan(-1, 10)
	assert.ErrorIs(t, err, internal.ErrInvalidArgument)
}
