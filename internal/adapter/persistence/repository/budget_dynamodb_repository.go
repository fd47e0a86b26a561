package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type budgetItem struct {
	ID                     string         `dynamodbav:"id"`
	Number                 int64          `dynamodbav:"number"`
	ClientID               string         `dynamodbav:"client_id"`
	ProjectName            string         `dynamodbav:"project_name"`
	Items                  []lineItemItem `dynamodbav:"items"`
	DistanceKm             string         `dynamodbav:"distance_km"`
	GlobalDifficultyFactor string         `dynamodbav:"global_difficulty_factor,omitempty"`
	Adjustment             string         `dynamodbav:"adjustment,omitempty"`
	AdjustmentReason       string         `dynamodbav:"adjustment_reason,omitempty"`
	Subtotal               string         `dynamodbav:"subtotal"`
	DistanceFee            string         `dynamodbav:"distance_fee"`
	TotalPrice             string         `dynamodbav:"total_price"`
	Status                 string         `dynamodbav:"status"`
	Observations           string         `dynamodbav:"observations,omitempty"`
	Locale                 string         `dynamodbav:"locale"`
	CreatedAt              string         `dynamodbav:"created_at"`
	UpdatedAt              string         `dynamodbav:"updated_at"`
	SentAt                 string         `dynamodbav:"sent_at,omitempty"`
}

// BudgetDynamoRepository persists budgets in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: client_id-index (PK: client_id)
type BudgetDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IBudgetRepository = (*BudgetDynamoRepository)(nil)

func NewBudgetDynamoRepository(ddb *dynamodb.Client, tables Tables) *BudgetDynamoRepository {
	return &BudgetDynamoRepository{ddb: ddb, tableName: tables.withDefaults().Budgets}
}

func (r *BudgetDynamoRepository) Create(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	av, err := attributevalue.MarshalMap(toBudgetItem(b))
	if err != nil {
		return entities.Budget{}, err
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
		return entities.Budget{}, err
	}
	return b, nil
}

func (r *BudgetDynamoRepository) GetByID(ctx context.Context, id string) (entities.Budget, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Budget{}, err
	}
	if len(out.Item) == 0 {
		return entities.Budget{}, nil
	}

	var it budgetItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Budget{}, err
	}
	return fromBudgetItem(it), nil
}

// List returns every budget, newest number first.
func (r *BudgetDynamoRepository) List(ctx context.Context) ([]entities.Budget, error) {
	items := []entities.Budget{}
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it budgetItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromBudgetItem(it))
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Number > items[j].Number })
	return items, nil
}

func (r *BudgetDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.BudgetStatus, sentAt *time.Time) (entities.Budget, error) {
	expr := "SET #status = :status, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(status)},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
	}
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	if sentAt != nil {
		expr += ", #sent_at = :sent_at"
		vals[":sent_at"] = &types.AttributeValueMemberS{Value: formatTime(*sentAt)}
		names["#sent_at"] = "sent_at"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: vals,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Budget{}, nil
		}
		return entities.Budget{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Budget{}, nil
	}

	var it budgetItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Budget{}, err
	}
	return fromBudgetItem(it), nil
}

func toBudgetItem(b entities.Budget) budgetItem {
	return budgetItem{
		ID:                     b.ID,
		Number:                 b.Number,
		ClientID:               b.ClientID,
		ProjectName:            b.ProjectName,
		Items:                  toLineItemItems(b.Items),
		DistanceKm:             b.DistanceKm.String(),
		GlobalDifficultyFactor: optionalDecimalString(b.GlobalDifficultyFactor),
		Adjustment:             optionalDecimalString(b.Adjustment),
		AdjustmentReason:       b.AdjustmentReason,
		Subtotal:               b.Subtotal.String(),
		DistanceFee:            b.DistanceFee.String(),
		TotalPrice:             b.TotalPrice.String(),
		Status:                 string(b.Status),
		Observations:           b.Observations,
		Locale:                 b.Locale,
		CreatedAt:              formatTime(b.CreatedAt),
		UpdatedAt:              formatTime(b.UpdatedAt),
		SentAt:                 formatOptionalTime(b.SentAt),
	}
}

func fromBudgetItem(it budgetItem) entities.Budget {
	return entities.Budget{
		ID:                     it.ID,
		Number:                 it.Number,
		ClientID:               it.ClientID,
		ProjectName:            it.ProjectName,
		Items:                  fromLineItemItems(it.Items),
		DistanceKm:             parseDecimal(it.DistanceKm),
		GlobalDifficultyFactor: parseOptionalDecimal(it.GlobalDifficultyFactor),
		Adjustment:             parseOptionalDecimal(it.Adjustment),
		AdjustmentReason:       it.AdjustmentReason,
		Subtotal:               parseDecimal(it.Subtotal),
		DistanceFee:            parseDecimal(it.DistanceFee),
		TotalPrice:             parseDecimal(it.TotalPrice),
		Status:                 entities.BudgetStatus(it.Status),
		Observations:           it.Observations,
		Locale:                 it.Locale,
		CreatedAt:              parseTime(it.CreatedAt),
		UpdatedAt:              parseTime(it.UpdatedAt),
		SentAt:                 parseOptionalTime(it.SentAt),
	}
}
