package spec

import (
	"fmt"
	"strings"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/lakeerrors"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

// Normalizer canonicalizes raw partition specs against a table's ordered
// partition field list. MatchCase controls whether spec keys must match the
// canonical field names exactly; by default matching is case-insensitive.
type Normalizer struct {
	MatchCase bool
}

// Normalize resolves every key of the raw spec to a canonical partition
// field name and returns the spec's values in schema partition order.
// Fields the spec omits are simply absent from the result, representing a
// prefix or subset spec.
func (n Normalizer) Normalize(table models.TableDescriptor, raw models.PartitionSpec) (models.NormalizedPartitionSpec, error) {
	if len(raw) == 0 {
		return nil, lakeerrors.ErrEmptyPartitionSpec
	}

	byField := make(map[string]string, len(raw))
	for key, value := range raw {
		field, ok := n.matchField(table.PartitionFields, key)
		if !ok {
			return nil, &lakeerrors.UnknownPartitionColumnError{Column: key, Table: table.Name}
		}
		if prev, dup := byField[field]; dup && prev != value {
			return nil, fmt.Errorf("%w %q: %q and %q", lakeerrors.ErrConflictingPartitionValue, field, prev, value)
		}
		byField[field] = value
	}

	normalized := make(models.NormalizedPartitionSpec, 0, len(byField))
	for _, field := range table.PartitionFields {
		if value, ok := byField[field]; ok {
			normalized = append(normalized, models.PartitionValue{Field: field, Value: value})
		}
	}
	return normalized, nil
}

func (n Normalizer) matchField(fields []string, key string) (string, bool) {
	for _, field := range fields {
		if n.MatchCase {
			if field == key {
				return field, true
			}
			continue
		}
		if strings.EqualFold(field, key) {
			return field, true
		}
	}
	return "", false
}
