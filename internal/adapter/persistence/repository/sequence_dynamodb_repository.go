package repository

import (
	"context"
	"fmt"
	"strconv"

	"obra_presupuestos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SequenceDynamoRepository hands out document numbers with an atomic ADD.
//
// Table requirements:
//   - PK: name (string)
//   - attribute value (number): last number handed out
type SequenceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISequenceGenerator = (*SequenceDynamoRepository)(nil)

func NewSequenceDynamoRepository(ddb *dynamodb.Client, tables Tables) *SequenceDynamoRepository {
	return &SequenceDynamoRepository{ddb: ddb, tableName: tables.withDefaults().Sequences}
}

func (r *SequenceDynamoRepository) Next(ctx context.Context, name string) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              sequenceKey(name),
		UpdateExpression: aws.String("ADD #value :one"),
		ExpressionAttributeNames: map[string]string{
			"#value": "value",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	return sequenceValue(out.Attributes)
}

func (r *SequenceDynamoRepository) Peek(ctx context.Context, name string) (int64, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            sequenceKey(name),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, err
	}
	if len(out.Item) == 0 {
		return 1, nil
	}
	n, err := sequenceValue(out.Item)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

func sequenceKey(name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"name": &types.AttributeValueMemberS{Value: name},
	}
}

func sequenceValue(attrs map[string]types.AttributeValue) (int64, error) {
	v, ok := attrs["value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("sequence value missing")
	}
	return strconv.ParseInt(v.Value, 10, 64)
}
