package tags

import (
	"context"
)

// Reconciler resolves a requested list of tag names to persisted tags,
// reusing existing rows and creating the missing ones. Names are matched
// exactly (case-sensitive, no normalization).
type Reconciler struct {
	repo RepositoryInterface
}

// NewReconciler creates a new tag reconciler
func NewReconciler(repo RepositoryInterface) *Reconciler {
	return &Reconciler{repo: repo}
}

// Reconcile maps each requested name to exactly one tag. Duplicate names in
// the request collapse to a single entry; the result preserves the order of
// first occurrence. Existing tags are fetched in a single bulk lookup and
// reused; each missing name is inserted once.
//
// The lookup-then-create sequence is not atomic: a concurrent request may
// insert the same new name first, in which case the insert fails with
// ErrDuplicateName and the caller should retry.
func (r *Reconciler) Reconcile(ctx context.Context, names []string) ([]Tag, error) {
	distinct := dedupeNames(names)
	if len(distinct) == 0 {
		return []Tag{}, nil
	}

	existing, err := r.repo.ListByNames(ctx, distinct)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]Tag, len(existing))
	for _, t := range existing {
		byName[t.Name] = t
	}

	result := make([]Tag, 0, len(distinct))
	for _, name := range distinct {
		if t, ok := byName[name]; ok {
			result = append(result, t)
			continue
		}
		created, err := r.repo.Create(ctx, name)
		if err != nil {
			return nil, err
		}
		result = append(result, *created)
	}
	return result, nil
}

// dedupeNames collapses duplicates, keeping the order of first occurrence
func dedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}
