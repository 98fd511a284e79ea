package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cancelled(codes ...string) error {
	reasons := make([]types.CancellationReason, 0, len(codes))
	for _, c := range codes {
		reasons = append(reasons, types.CancellationReason{Code: aws.String(c)})
	}
	return &types.TransactionCanceledException{Message: aws.String("Transaction cancelled"), CancellationReasons: reasons}
}

func sampleClaim() entities.Claim {
	return entities.Claim{
		ID:                "claim-1",
		ClaimNumber:       "FNOL-123456",
		Type:              entities.ClaimTypeAuto,
		Status:            entities.ClaimStatusNew,
		PolicyholderName:  "Jane Roe",
		PolicyholderID:    "ID-99",
		PolicyholderEmail: "jane@example.com",
		PolicyholderPhone: "555-0100",
		PolicyNumber:      "POL-1",
		CoverageType:      "Full",
		IncidentDate:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Location:          "Main St",
		Description:       "Rear-ended at a light",
		DamageCategory:    "Collision",
		UserID:            "user-1",
		CreatedAt:         time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
	}
}

func sampleEntry(action entities.ActivityAction) entities.ActivityLogEntry {
	return entities.ActivityLogEntry{
		ID:        "01HZX0000000000000000000AA",
		ClaimID:   "claim-1",
		Action:    action,
		Details:   "details",
		CreatedAt: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestClaimDynamoRepository_Create(t *testing.T) {
	t.Run("writes guard, claim and entry in one transaction", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewClaimDynamoRepository(fake)

		got, err := repo.Create(context.Background(), sampleClaim(), sampleEntry(entities.ActivityClaimCreated))
		require.NoError(t, err)
		assert.Equal(t, "claim-1", got.ID)

		require.Len(t, fake.transacts, 1)
		items := fake.transacts[0].TransactItems
		require.Len(t, items, 3)
		assert.Equal(t, defaultClaimNumbersTableName, aws.ToString(items[0].Put.TableName))
		assert.Equal(t, "attribute_not_exists(#cn)", aws.ToString(items[0].Put.ConditionExpression))
		assert.Equal(t, defaultClaimsTableName, aws.ToString(items[1].Put.TableName))
		assert.Equal(t, defaultActivityTableName, aws.ToString(items[2].Put.TableName))
	})

	t.Run("number guard failure maps to ErrClaimNumberTaken", func(t *testing.T) {
		fake := &fakeDynamo{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, cancelled("ConditionalCheckFailed", "None", "None")
		}}
		repo := NewClaimDynamoRepository(fake)

		_, err := repo.Create(context.Background(), sampleClaim(), sampleEntry(entities.ActivityClaimCreated))
		assert.ErrorIs(t, err, interfaces.ErrClaimNumberTaken)
	})

	t.Run("other failures are wrapped", func(t *testing.T) {
		boom := errors.New("throttled")
		fake := &fakeDynamo{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, boom
		}}
		repo := NewClaimDynamoRepository(fake)

		_, err := repo.Create(context.Background(), sampleClaim(), sampleEntry(entities.ActivityClaimCreated))
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, interfaces.ErrClaimNumberTaken)
	})
}

func TestClaimDynamoRepository_UpdateStatus(t *testing.T) {
	t.Run("missing claim returns zero value", func(t *testing.T) {
		fake := &fakeDynamo{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, cancelled("ConditionalCheckFailed", "None")
		}}
		repo := NewClaimDynamoRepository(fake)

		got, err := repo.UpdateStatus(context.Background(), "nope", entities.ClaimStatusClosed, nil, sampleEntry(entities.ActivityStatusUpdated))
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("note is set alongside status and re-read", func(t *testing.T) {
		updated := sampleClaim()
		updated.Status = entities.ClaimStatusClosed
		updated.InternalNote = "paid"
		av, err := attributevalue.MarshalMap(toClaimItem(updated))
		require.NoError(t, err)

		fake := &fakeDynamo{getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			assert.True(t, aws.ToBool(in.ConsistentRead))
			return &dynamodb.GetItemOutput{Item: av}, nil
		}}
		repo := NewClaimDynamoRepository(fake)

		note := "paid"
		got, err := repo.UpdateStatus(context.Background(), "claim-1", entities.ClaimStatusClosed, &note, sampleEntry(entities.ActivityStatusUpdated))
		require.NoError(t, err)
		assert.Equal(t, entities.ClaimStatusClosed, got.Status)
		assert.Equal(t, "paid", got.InternalNote)
		assert.True(t, got.IncidentDate.Equal(updated.IncidentDate))

		update := fake.transacts[0].TransactItems[0].Update
		require.NotNil(t, update)
		assert.Equal(t, "SET #status = :status, #note = :note", aws.ToString(update.UpdateExpression))
		assert.Equal(t, "internal_note", update.ExpressionAttributeNames["#note"])
		assert.NotNil(t, fake.transacts[0].TransactItems[1].Put)
	})

	t.Run("nil note leaves note untouched", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewClaimDynamoRepository(fake)

		_, err := repo.UpdateStatus(context.Background(), "claim-1", entities.ClaimStatusInReview, nil, sampleEntry(entities.ActivityStatusUpdated))
		require.NoError(t, err)
		update := fake.transacts[0].TransactItems[0].Update
		assert.Equal(t, "SET #status = :status", aws.ToString(update.UpdateExpression))
		assert.NotContains(t, update.ExpressionAttributeValues, ":note")
	})
}

func TestClaimDynamoRepository_ListActivity(t *testing.T) {
	newer := sampleEntry(entities.ActivityStatusUpdated)
	newer.ID = "01HZX0000000000000000000BB"
	older := sampleEntry(entities.ActivityClaimCreated)

	a, err := attributevalue.MarshalMap(toActivityItem(newer))
	require.NoError(t, err)
	b, err := attributevalue.MarshalMap(toActivityItem(older))
	require.NoError(t, err)

	fake := &fakeDynamo{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		assert.False(t, aws.ToBool(in.ScanIndexForward))
		return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{a, b}}, nil
	}}
	repo := NewClaimDynamoRepository(fake)

	got, err := repo.ListActivity(context.Background(), "claim-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, entities.ActivityClaimCreated, got[1].Action)
}

func TestClaimDynamoRepository_ListAll_Paginates(t *testing.T) {
	first, second := sampleClaim(), sampleClaim()
	second.ID = "claim-2"
	second.CreatedAt = first.CreatedAt.Add(time.Hour)
	a, _ := attributevalue.MarshalMap(toClaimItem(first))
	b, _ := attributevalue.MarshalMap(toClaimItem(second))

	calls := 0
	fake := &fakeDynamo{scan: func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
		calls++
		if in.ExclusiveStartKey == nil {
			return &dynamodb.ScanOutput{
				Items:            []map[string]types.AttributeValue{a},
				LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "claim-1"}},
			}, nil
		}
		return &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{b}}, nil
	}}
	repo := NewClaimDynamoRepository(fake)

	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, got, 2)
	assert.Equal(t, "claim-2", got[0].ID)
}
