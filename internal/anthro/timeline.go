package anthro

import (
	"nutrition-app-server/internal/models"
)

// SupersedesRef normalizes the revision back-reference of a record. The
// canonical field is SupersedesRecordID; records written by older clients
// carry it inside results.audit.sourceRecordId instead, so this is the single
// place where the legacy location is consulted.
func SupersedesRef(r *models.AnthropometricRecord) string {
	if r == nil {
		return ""
	}
	if r.SupersedesRecordID != nil && *r.SupersedesRecordID != "" {
		return *r.SupersedesRecordID
	}
	audit, ok := r.Results["audit"].(map[string]any)
	if !ok {
		return ""
	}
	src, _ := audit["sourceRecordId"].(string)
	return src
}

// ResolveTimeline reconstructs the revision lineage of a record by walking
// its supersedes back-references through allRecords. The result is ordered
// oldest ancestor first, the queried record last.
//
// Traversal stops when no parent reference exists, the parent is not in
// allRecords, or an id repeats. The seen-set guard guarantees termination in
// at most len(allRecords) steps even when stored references form a cycle;
// a malformed cycle silently truncates the timeline instead of failing.
func ResolveTimeline(r *models.AnthropometricRecord, allRecords []*models.AnthropometricRecord) []*models.AnthropometricRecord {
	if r == nil {
		return nil
	}

	byID := make(map[string]*models.AnthropometricRecord, len(allRecords))
	for _, rec := range allRecords {
		if rec != nil && rec.ID != "" {
			byID[rec.ID] = rec
		}
	}

	seen := map[string]bool{}
	visited := []*models.AnthropometricRecord{}

	for cur := r; cur != nil && !seen[cur.ID]; {
		seen[cur.ID] = true
		visited = append(visited, cur)

		ref := SupersedesRef(cur)
		if ref == "" {
			break
		}
		cur = byID[ref]
	}

	// Reverse so index 0 is the oldest ancestor.
	for i, j := 0, len(visited)-1; i < j; i, j = i+1, j-1 {
		visited[i], visited[j] = visited[j], visited[i]
	}
	return visited
}
