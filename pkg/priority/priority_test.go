package priority

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valentinpelus/feedbacklens/pkg/types"
)

func item(id, category string, urgency, impact int) types.AnalyzedFeedback {
	return types.AnalyzedFeedback{
		ID:       id,
		Category: category,
		Urgency:  urgency,
		Impact:   impact,
	}
}

func TestScore(t *testing.T) {
	assert.Equal(t, 17, Score(item("a", "bug", 9, 8)))
	assert.Equal(t, 2, Score(item("b", "bug", 1, 1)))
	assert.Equal(t, 20, Score(item("c", "bug", 10, 10)))
}

func TestFilterByCategory(t *testing.T) {
	items := []types.AnalyzedFeedback{
		item("a", "bug", 5, 5),
		item("b", "feature", 5, 5),
		item("c", "bug", 5, 5),
		item("d", "pricing", 5, 5),
	}

	t.Run("all returns input unchanged", func(t *testing.T) {
		filtered := FilterByCategory(items, CategoryAll)
		assert.Equal(t, items, filtered)
	})

	t.Run("matching category preserves order", func(t *testing.T) {
		filtered := FilterByCategory(items, "bug")
		require.Len(t, filtered, 2)
		assert.Equal(t, "a", filtered[0].ID)
		assert.Equal(t, "c", filtered[1].ID)
	})

	t.Run("unknown category matches nothing but is never nil", func(t *testing.T) {
		filtered := FilterByCategory(items, "rant")
		assert.NotNil(t, filtered)
		assert.Empty(t, filtered)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, FilterByCategory(nil, "bug"))
	})
}

func TestRank_StableForEqualScores(t *testing.T) {
	// Scores: a=10, b=15, c=15, d=8. b and c tie and must keep input order.
	items := []types.AnalyzedFeedback{
		item("a", "bug", 5, 5),
		item("b", "bug", 7, 8),
		item("c", "bug", 8, 7),
		item("d", "bug", 4, 4),
	}

	ranked := Rank(items, 4)
	require.Len(t, ranked, 4)
	assert.Equal(t, "b", ranked[0].ID)
	assert.Equal(t, "c", ranked[1].ID)
	assert.Equal(t, "a", ranked[2].ID)
	assert.Equal(t, "d", ranked[3].ID)
}

func TestRank_TruncatesToN(t *testing.T) {
	items := []types.AnalyzedFeedback{
		item("a", "bug", 1, 1),
		item("b", "bug", 10, 10),
		item("c", "bug", 5, 5),
	}

	ranked := Rank(items, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].ID)
	assert.Equal(t, "c", ranked[1].ID)
}

func TestRank_DefaultN(t *testing.T) {
	var items []types.AnalyzedFeedback
	for i := 0; i < 15; i++ {
		items = append(items, item(fmt.Sprintf("i%d", i), "bug", 5, 5))
	}

	assert.Len(t, Rank(items, 0), DefaultTopN)
	assert.Len(t, Rank(items, -1), DefaultTopN)
}

func TestRank_ShorterThanN(t *testing.T) {
	items := []types.AnalyzedFeedback{
		item("a", "bug", 5, 5),
	}

	ranked := Rank(items, 10)
	assert.Len(t, ranked, 1)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	items := []types.AnalyzedFeedback{
		item("a", "bug", 1, 1),
		item("b", "bug", 10, 10),
	}

	Rank(items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
}

func TestCountByCategory(t *testing.T) {
	items := []types.AnalyzedFeedback{
		item("a", "bug", 5, 5),
		item("b", "feature", 5, 5),
		item("c", "bug", 5, 5),
	}

	counts := CountByCategory(items)
	assert.Equal(t, map[string]int{"bug": 2, "feature": 1}, counts)
}
