package repository

import (
	"context"
	"sort"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const emailHistoryDocumentIDIndex = "document_id-index"

type emailHistoryItem struct {
	ID         string `dynamodbav:"id"`
	DocumentID string `dynamodbav:"document_id"`
	Type       string `dynamodbav:"type"`
	Subject    string `dynamodbav:"subject"`
	Content    string `dynamodbav:"content"`
	SentAt     string `dynamodbav:"sent_at"`
}

// EmailHistoryDynamoRepository is the append-only email log.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: document_id-index (PK: document_id)
type EmailHistoryDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEmailHistoryRepository = (*EmailHistoryDynamoRepository)(nil)

func NewEmailHistoryDynamoRepository(ddb *dynamodb.Client, tables Tables) *EmailHistoryDynamoRepository {
	return &EmailHistoryDynamoRepository{ddb: ddb, tableName: tables.withDefaults().EmailHistory}
}

func (r *EmailHistoryDynamoRepository) Append(ctx context.Context, e entities.EmailHistoryEntry) (entities.EmailHistoryEntry, error) {
	av, err := attributevalue.MarshalMap(emailHistoryItem{
		ID:         e.ID,
		DocumentID: e.DocumentID,
		Type:       string(e.Type),
		Subject:    e.Subject,
		Content:    e.Content,
		SentAt:     formatTime(e.SentAt),
	})
	if err != nil {
		return entities.EmailHistoryEntry{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.EmailHistoryEntry{}, err
	}
	return e, nil
}

// ListByDocumentID returns the entries of one document, oldest first.
func (r *EmailHistoryDynamoRepository) ListByDocumentID(ctx context.Context, documentID string) ([]entities.EmailHistoryEntry, error) {
	items := []entities.EmailHistoryEntry{}
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(emailHistoryDocumentIDIndex),
		KeyConditionExpression: aws.String("document_id = :did"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":did": &types.AttributeValueMemberS{Value: documentID},
		},
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it emailHistoryItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, entities.EmailHistoryEntry{
				ID:         it.ID,
				DocumentID: it.DocumentID,
				Type:       entities.EmailType(it.Type),
				Subject:    it.Subject,
				Content:    it.Content,
				SentAt:     parseTime(it.SentAt),
			})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].SentAt.Before(items[j].SentAt) })
	return items, nil
}
