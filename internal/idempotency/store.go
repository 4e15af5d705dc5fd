package idempotency

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/imrishuroy/go-storefront/internal/aws"
)

// DefaultTTL is how long a checkout key is remembered.
const DefaultTTL = 48 * time.Hour

// ErrRecordMissing is returned by updates when the key has no record, for
// example because it expired.
var ErrRecordMissing = errors.New("idempotency record missing")

// Store reads and updates idempotency records in DynamoDB. Records are
// created by the orders store inside the order transaction.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	ttlWindow time.Duration
	nowFunc   func() time.Time
}

// NewStore returns a Store. ttlWindow <= 0 uses DefaultTTL.
func NewStore(client aws.DynamoDBAPI, tableName string, ttlWindow time.Duration) *Store {
	if ttlWindow <= 0 {
		ttlWindow = DefaultTTL
	}
	return &Store{
		client:    client,
		tableName: tableName,
		ttlWindow: ttlWindow,
		nowFunc:   time.Now,
	}
}

func (s *Store) TableName() string { return s.tableName }

// NewRecord builds the IN_PROGRESS record for a checkout attempt.
func (s *Store) NewRecord(key, orderID, sessionID string) Record {
	now := s.nowFunc()
	return Record{
		IdempotencyKey: key,
		Status:         StatusInProgress,
		OrderID:        orderID,
		SessionID:      sessionID,
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpiresAt:      now.Add(s.ttlWindow).Unix(),
	}
}

// Get retrieves a record by key. If not found, returns (nil, nil).
func (s *Store) Get(ctx context.Context, key string) (*Record, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName:      &s.tableName,
		Key:            recordKey(key),
		ConsistentRead: awsBool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var rec Record
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return &rec, nil
}

// SaveResponse stores the response returned to the first caller so that
// replays get the same body while the order is still being processed.
func (s *Store) SaveResponse(ctx context.Context, key, responseBody string, responseStatus int) error {
	return s.update(ctx, key, "SET response_body = :rb, response_status = :rs, updated_at = :ua", nil,
		map[string]types.AttributeValue{
			":rb": &types.AttributeValueMemberS{Value: responseBody},
			":rs": &types.AttributeValueMemberN{Value: strconv.Itoa(responseStatus)},
		}, "save response")
}

// MarkDone sets status to DONE.
func (s *Store) MarkDone(ctx context.Context, key string) error {
	return s.update(ctx, key, "SET #s = :done, updated_at = :ua", statusName,
		map[string]types.AttributeValue{
			":done": &types.AttributeValueMemberS{Value: StatusDone},
		}, "mark done")
}

// MarkFailed sets status to FAILED with a short note.
func (s *Store) MarkFailed(ctx context.Context, key, note string) error {
	return s.update(ctx, key, "SET #s = :failed, note = :n, updated_at = :ua", statusName,
		map[string]types.AttributeValue{
			":failed": &types.AttributeValueMemberS{Value: StatusFailed},
			":n":      &types.AttributeValueMemberS{Value: note},
		}, "mark failed")
}

var statusName = map[string]string{"#s": "status"}

func (s *Store) update(ctx context.Context, key, expr string, names map[string]string, values map[string]types.AttributeValue, op string) error {
	values[":ua"] = &types.AttributeValueMemberS{Value: s.nowFunc().Format(time.RFC3339)}
	input := &dyn.UpdateItemInput{
		TableName:                 &s.tableName,
		Key:                       recordKey(key),
		UpdateExpression:          &expr,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       awsString("attribute_exists(idempotency_key)"),
		ReturnValues:              types.ReturnValueUpdatedNew,
	}
	if _, err := s.client.UpdateItem(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ConditionalCheckFailedException" {
			return fmt.Errorf("%s %q: %w", op, key, ErrRecordMissing)
		}
		return fmt.Errorf("update item (%s): %w", op, err)
	}
	return nil
}

func recordKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"idempotency_key": &types.AttributeValueMemberS{Value: key},
	}
}

func awsBool(b bool) *bool { return &b }

func awsString(s string) *string { return &s }
