package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/glue"
	gluetypes "github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

type fakeGlue struct {
	getCalls    int
	updateCalls int
	failGets    int
	parameters  map[string]string
}

func (f *fakeGlue) GetTable(_ context.Context, params *glue.GetTableInput, _ ...func(*glue.Options)) (*glue.GetTableOutput, error) {
	f.getCalls++
	if f.getCalls <= f.failGets {
		return nil, fmt.Errorf("throttled")
	}
	return &glue.GetTableOutput{
		Table: &gluetypes.Table{
			Name:       params.Name,
			Parameters: map[string]string{"table_type": "lake"},
		},
	}, nil
}

func (f *fakeGlue) UpdateTable(_ context.Context, params *glue.UpdateTableInput, _ ...func(*glue.Options)) (*glue.UpdateTableOutput, error) {
	f.updateCalls++
	f.parameters = params.TableInput.Parameters
	return &glue.UpdateTableOutput{}, nil
}

func TestGlueRefreshBumpsRefreshMarker(t *testing.T) {
	fake := &fakeGlue{}
	g := NewGlueRefresherWithClient(fake)

	err := g.Refresh(context.Background(), models.TableIdentifier{Database: "analytics", Table: "events"})
	require.NoError(t, err)

	assert.Equal(t, 1, fake.updateCalls)
	assert.Contains(t, fake.parameters, "last_refresh_at")
	// Existing parameters are preserved.
	assert.Equal(t, "lake", fake.parameters["table_type"])
}

func TestGlueRefreshRetriesTransientFailures(t *testing.T) {
	fake := &fakeGlue{failGets: 2}
	g := NewGlueRefresherWithClient(fake)

	err := g.Refresh(context.Background(), models.TableIdentifier{Database: "analytics", Table: "events"})
	require.NoError(t, err)
	assert.Equal(t, 3, fake.getCalls)
}

func TestGlueRefreshGivesUpAfterRetries(t *testing.T) {
	fake := &fakeGlue{failGets: 10}
	g := NewGlueRefresherWithClient(fake)

	err := g.Refresh(context.Background(), models.TableIdentifier{Database: "analytics", Table: "events"})
	assert.Error(t, err)
	assert.Equal(t, 0, fake.updateCalls)
}
