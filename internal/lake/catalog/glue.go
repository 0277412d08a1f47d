package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	gluetypes "github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/cenkalti/backoff/v4"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

// GlueAPI is the slice of the Glue client the refresher uses.
type GlueAPI interface {
	GetTable(ctx context.Context, params *glue.GetTableInput, optFns ...func(*glue.Options)) (*glue.GetTableOutput, error)
	UpdateTable(ctx context.Context, params *glue.UpdateTableInput, optFns ...func(*glue.Options)) (*glue.UpdateTableOutput, error)
}

// GlueRefresher invalidates the Glue catalog's view of a table by bumping
// a refresh marker on the table's parameters, which forces engines reading
// through Glue to reload partitions. Transient API failures are retried
// with exponential backoff before the refresh is reported failed.
type GlueRefresher struct {
	client  GlueAPI
	retries uint64
}

func NewGlueRefresher(cfg aws.Config) *GlueRefresher {
	return &GlueRefresher{client: glue.NewFromConfig(cfg), retries: 3}
}

func NewGlueRefresherWithClient(client GlueAPI) *GlueRefresher {
	return &GlueRefresher{client: client, retries: 3}
}

func (g *GlueRefresher) Refresh(ctx context.Context, ident models.TableIdentifier) error {
	operation := func() error {
		out, err := g.client.GetTable(ctx, &glue.GetTableInput{
			DatabaseName: aws.String(ident.Database),
			Name:         aws.String(ident.Table),
		})
		if err != nil {
			return fmt.Errorf("reading glue table %s.%s: %w", ident.Database, ident.Table, err)
		}

		parameters := map[string]string{}
		for k, v := range out.Table.Parameters {
			parameters[k] = v
		}
		parameters["last_refresh_at"] = time.Now().UTC().Format(time.RFC3339)

		_, err = g.client.UpdateTable(ctx, &glue.UpdateTableInput{
			DatabaseName: aws.String(ident.Database),
			TableInput: &gluetypes.TableInput{
				Name:              out.Table.Name,
				Description:       out.Table.Description,
				Owner:             out.Table.Owner,
				Parameters:        parameters,
				PartitionKeys:     out.Table.PartitionKeys,
				Retention:         out.Table.Retention,
				StorageDescriptor: out.Table.StorageDescriptor,
				TableType:         out.Table.TableType,
			},
		})
		if err != nil {
			return fmt.Errorf("updating glue table %s.%s: %w", ident.Database, ident.Table, err)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), g.retries), ctx)
	return backoff.Retry(operation, policy)
}
