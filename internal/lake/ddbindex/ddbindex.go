package ddbindex

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

const (
	attrTableName     = "tableName"
	attrPartitionPath = "partitionPath"
)

// Lister resolves partial partition specs against a DynamoDB partition
// index instead of listing storage. The index table is keyed by table name
// (hash) and partition path (range), maintained by the ingest side; for
// large tables this avoids a full object listing per drop.
type Lister struct {
	client     dynamodb.QueryAPIClient
	indexTable string
}

func NewLister(cfg aws.Config, indexTable string) *Lister {
	return &Lister{client: dynamodb.NewFromConfig(cfg), indexTable: indexTable}
}

func NewListerWithClient(client dynamodb.QueryAPIClient, indexTable string) *Lister {
	return &Lister{client: client, indexTable: indexTable}
}

func (l *Lister) ListPartitions(ctx context.Context, table models.TableDescriptor, pathPrefix string) ([]models.PartitionPath, error) {
	queryInput := &dynamodb.QueryInput{
		TableName:              aws.String(l.indexTable),
		ProjectionExpression:   aws.String(attrPartitionPath),
		KeyConditionExpression: aws.String(fmt.Sprintf("%s = :t", attrTableName)),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberS{Value: table.Name},
		},
	}
	if pathPrefix != "" {
		queryInput.KeyConditionExpression = aws.String(
			fmt.Sprintf("%s = :t AND begins_with(%s, :p)", attrTableName, attrPartitionPath))
		queryInput.ExpressionAttributeValues[":p"] = &types.AttributeValueMemberS{Value: pathPrefix}
	}

	var partitions []models.PartitionPath
	paginator := dynamodb.NewQueryPaginator(l.client, queryInput)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("querying partition index %q: %w", l.indexTable, err)
		}
		for _, item := range page.Items {
			attr, ok := item[attrPartitionPath].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}
			partitions = append(partitions, models.PartitionPath(attr.Value))
		}
	}
	return partitions, nil
}
