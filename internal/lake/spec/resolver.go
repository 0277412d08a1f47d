package spec

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/arvind-menon/laketable-drop-partition/interfaces"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/lakeerrors"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

// PathResolver turns normalized partition specs into the concrete partition
// paths they address, consulting live metadata for partial specs.
type PathResolver struct {
	lister interfaces.PartitionLister
}

func NewPathResolver(lister interfaces.PartitionLister) *PathResolver {
	return &PathResolver{lister: lister}
}

// Resolve maps every spec to the set of existing partitions it addresses
// and returns the deduplicated union, sorted for deterministic commits.
//
// A complete spec addresses exactly one partition; a strict leading prefix
// of the schema order addresses every partition sharing those leading
// values; any other partial spec is ambiguous and rejected. A spec
// matching zero partitions is an error unless ifExists is set.
func (r *PathResolver) Resolve(ctx context.Context, table models.TableDescriptor,
	specs []models.NormalizedPartitionSpec, ifExists bool) ([]models.PartitionPath, error) {

	seen := make(map[models.PartitionPath]struct{})
	var resolved []models.PartitionPath

	for _, s := range specs {
		matches, err := r.resolveOne(ctx, table, s)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			if ifExists {
				continue
			}
			return nil, &lakeerrors.NoSuchPartitionError{Spec: formatSpec(s), Table: table.Name}
		}
		for _, p := range matches {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			resolved = append(resolved, p)
		}
	}

	sort.Slice(resolved, func(i, j int) bool { return resolved[i] < resolved[j] })
	return resolved, nil
}

func (r *PathResolver) resolveOne(ctx context.Context, table models.TableDescriptor,
	s models.NormalizedPartitionSpec) ([]models.PartitionPath, error) {

	if len(s) == 0 {
		return nil, lakeerrors.ErrEmptyPartitionSpec
	}
	if !isLeadingPrefix(s, table.PartitionFields) {
		return nil, &lakeerrors.AmbiguousPartitionSpecError{
			SpecFields:   s.Fields(),
			SchemaFields: table.PartitionFields,
		}
	}

	prefix := EncodePath(s)
	listed, err := r.lister.ListPartitions(ctx, table, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing partitions of table %q under %q: %w", table.Name, prefix, err)
	}

	// Listers may match on raw string prefixes; keep only matches on a
	// whole field=value segment boundary so year=2020 never captures
	// year=20201.
	var matches []models.PartitionPath
	for _, p := range listed {
		if segmentPrefixMatch(string(p), prefix) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// EncodePath joins a normalized spec into a partition path of ordered
// field=value segments, escaping reserved characters in values.
func EncodePath(s models.NormalizedPartitionSpec) string {
	segments := make([]string, len(s))
	for i, pv := range s {
		segments[i] = pv.Field + "=" + EscapePathValue(pv.Value)
	}
	return strings.Join(segments, "/")
}

// isLeadingPrefix reports whether the spec's fields are exactly the first
// len(spec) fields of the schema order.
func isLeadingPrefix(s models.NormalizedPartitionSpec, schema []string) bool {
	if len(s) > len(schema) {
		return false
	}
	for i, pv := range s {
		if pv.Field != schema[i] {
			return false
		}
	}
	return true
}

func segmentPrefixMatch(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func formatSpec(s models.NormalizedPartitionSpec) string {
	parts := make([]string, len(s))
	for i, pv := range s {
		parts[i] = pv.Field + "=" + pv.Value
	}
	return strings.Join(parts, ",")
}
