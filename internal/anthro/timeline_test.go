package anthro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-app-server/internal/models"
)

func record(id string, supersedes string) *models.AnthropometricRecord {
	r := &models.AnthropometricRecord{}
	r.ID = id
	if supersedes != "" {
		r.SupersedesRecordID = &supersedes
	}
	return r
}

func TestResolveTimeline_ChainOldestFirst(t *testing.T) {
	a := record("a", "")
	b := record("b", "a")
	c := record("c", "b")
	all := []*models.AnthropometricRecord{a, b, c}

	timeline := ResolveTimeline(c, all)

	require.Len(t, timeline, 3)
	assert.Equal(t, "a", timeline[0].ID)
	assert.Equal(t, "b", timeline[1].ID)
	assert.Equal(t, "c", timeline[2].ID)
}

func TestResolveTimeline_SingleRecord(t *testing.T) {
	a := record("a", "")

	timeline := ResolveTimeline(a, []*models.AnthropometricRecord{a})

	require.Len(t, timeline, 1)
	assert.Equal(t, "a", timeline[0].ID)
}

func TestResolveTimeline_ParentNotInSet(t *testing.T) {
	b := record("b", "a") // "a" was deleted

	timeline := ResolveTimeline(b, []*models.AnthropometricRecord{b})

	require.Len(t, timeline, 1)
	assert.Equal(t, "b", timeline[0].ID)
}

func TestResolveTimeline_CycleTerminates(t *testing.T) {
	x := record("x", "y")
	y := record("y", "x")
	all := []*models.AnthropometricRecord{x, y}

	timeline := ResolveTimeline(x, all)

	// Finite, no duplicate ids, silently truncated.
	require.Len(t, timeline, 2)
	seen := map[string]bool{}
	for _, r := range timeline {
		assert.False(t, seen[r.ID], "record %s appears twice", r.ID)
		seen[r.ID] = true
	}
}

func TestResolveTimeline_SelfReferenceTerminates(t *testing.T) {
	x := record("x", "x")

	timeline := ResolveTimeline(x, []*models.AnthropometricRecord{x})

	require.Len(t, timeline, 1)
}

func TestResolveTimeline_LegacyAuditFallback(t *testing.T) {
	a := record("a", "")
	b := record("b", "")
	b.Results = models.ResultsBag{
		"audit": map[string]any{"sourceRecordId": "a"},
	}
	all := []*models.AnthropometricRecord{a, b}

	timeline := ResolveTimeline(b, all)

	require.Len(t, timeline, 2)
	assert.Equal(t, "a", timeline[0].ID)
	assert.Equal(t, "b", timeline[1].ID)
}

func TestSupersedesRef_CanonicalFieldWinsOverLegacy(t *testing.T) {
	r := record("b", "canonical")
	r.Results = models.ResultsBag{
		"audit": map[string]any{"sourceRecordId": "legacy"},
	}

	assert.Equal(t, "canonical", SupersedesRef(r))
}

func TestSupersedesRef_NoReference(t *testing.T) {
	assert.Equal(t, "", SupersedesRef(record("a", "")))
	assert.Equal(t, "", SupersedesRef(nil))
}

func TestResolveTimeline_NilRecord(t *testing.T) {
	assert.Nil(t, ResolveTimeline(nil, nil))
}
