package spec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/lakeerrors"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

func testTable() models.TableDescriptor {
	return models.TableDescriptor{
		Name:            "trips",
		BasePath:        "/data/trips",
		PartitionFields: []string{"year", "month", "day"},
		RecordKeyFields: []string{"trip_id"},
	}
}

func TestNormalizeOrdersFieldsPerSchema(t *testing.T) {
	n := Normalizer{}

	normalized, err := n.Normalize(testTable(), models.PartitionSpec{
		"day":   "7",
		"year":  "2020",
		"month": "1",
	})
	require.NoError(t, err)

	assert.Equal(t, models.NormalizedPartitionSpec{
		{Field: "year", Value: "2020"},
		{Field: "month", Value: "1"},
		{Field: "day", Value: "7"},
	}, normalized)
}

func TestNormalizeCaseInsensitiveByDefault(t *testing.T) {
	n := Normalizer{}

	normalized, err := n.Normalize(testTable(), models.PartitionSpec{"YEAR": "2020"})
	require.NoError(t, err)

	assert.Equal(t, models.NormalizedPartitionSpec{{Field: "year", Value: "2020"}}, normalized)
}

func TestNormalizeMatchCaseRejectsWrongCasing(t *testing.T) {
	n := Normalizer{MatchCase: true}

	_, err := n.Normalize(testTable(), models.PartitionSpec{"Year": "2020"})

	var unknownErr *lakeerrors.UnknownPartitionColumnError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "Year", unknownErr.Column)
	assert.Equal(t, "trips", unknownErr.Table)
}

func TestNormalizeUnknownColumn(t *testing.T) {
	n := Normalizer{}

	_, err := n.Normalize(testTable(), models.PartitionSpec{"region": "eu"})

	var unknownErr *lakeerrors.UnknownPartitionColumnError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "region", unknownErr.Column)
}

func TestNormalizePartialSpecKeepsOnlyGivenFields(t *testing.T) {
	n := Normalizer{}

	normalized, err := n.Normalize(testTable(), models.PartitionSpec{"year": "2020"})
	require.NoError(t, err)

	assert.Equal(t, []string{"year"}, normalized.Fields())
}

func TestNormalizeEmptySpec(t *testing.T) {
	n := Normalizer{}

	_, err := n.Normalize(testTable(), models.PartitionSpec{})
	assert.ErrorIs(t, err, lakeerrors.ErrEmptyPartitionSpec)
}

func TestNormalizeConflictingValuesForOneField(t *testing.T) {
	n := Normalizer{}

	_, err := n.Normalize(testTable(), models.PartitionSpec{
		"Year": "2020",
		"year": "2021",
	})
	assert.True(t, errors.Is(err, lakeerrors.ErrConflictingPartitionValue))
}

func TestNormalizeDuplicateKeysSameValue(t *testing.T) {
	n := Normalizer{}

	normalized, err := n.Normalize(testTable(), models.PartitionSpec{
		"Year": "2020",
		"year": "2020",
	})
	require.NoError(t, err)
	assert.Equal(t, models.NormalizedPartitionSpec{{Field: "year", Value: "2020"}}, normalized)
}
