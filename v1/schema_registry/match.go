package schema_registry

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/sheetmap/v1/schema"
)

// Match returns the id of the schema whose field names cover every observed
// header. Blank headers are ignored; an empty header set only matches schemas
// without fields. Nested child fields count as names of their parent, so a
// complex schema matches the flattened header of its record tree.
//
// When several schemas qualify, one with a backing type wins over one
// without, and the lexicographically smallest id breaks the remaining tie.
func (r *Registry) Match(ctx context.Context, headers []string, by MatchBy) (string, bool) {
	start := time.Now()
	if r.hotReload.Load() {
		_ = r.Reload(ctx)
	}

	candidates := r.visibleSchemas()
	observed := normalizeHeaders(headers)

	qualified := make([]bool, len(candidates))
	g := new(errgroup.Group)
	g.SetLimit(r.cfg.MatchWorkers)
	for i, s := range candidates {
		g.Go(func() error {
			qualified[i] = covers(s, observed, by)
			return nil
		})
	}
	_ = g.Wait()

	id, ok := pickCandidate(candidates, qualified)
	r.observeOperation("match", id, time.Since(start), nil, int64(len(candidates)))
	return id, ok
}

// visibleSchemas returns the schemas a lookup can see, sorted by id.
func (r *Registry) visibleSchemas() []*schema.Schema {
	ids := r.visibleIDs()
	out := make([]*schema.Schema, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.visible(id); ok {
			out = append(out, s)
		}
	}
	return out
}

func normalizeHeaders(headers []string) []string {
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}

func covers(s *schema.Schema, observed []string, by MatchBy) bool {
	names := s.LeafNames(by == MatchExternal)
	if len(observed) == 0 {
		return len(names) == 0
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	for _, h := range observed {
		if _, ok := set[h]; !ok {
			return false
		}
	}
	return true
}

// pickCandidate expects candidates sorted by id.
func pickCandidate(candidates []*schema.Schema, qualified []bool) (string, bool) {
	first := ""
	found := false
	for i, s := range candidates {
		if !qualified[i] {
			continue
		}
		if s.BackingType != nil {
			return s.ID, true
		}
		if !found {
			first, found = s.ID, true
		}
	}
	return first, found
}
