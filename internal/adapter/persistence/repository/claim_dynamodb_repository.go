package repository

import (
	"context"
	"fmt"
	"time"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultClaimsTableName       = "claims"
	defaultActivityTableName     = "claim_activity"
	defaultClaimNumbersTableName = "claim_numbers"
	claimsUserIDIndex            = "user_id-index"
)

type claimItem struct {
	ID                string `dynamodbav:"id"`
	ClaimNumber       string `dynamodbav:"claim_number"`
	Type              string `dynamodbav:"type"`
	Status            string `dynamodbav:"status"`
	PolicyholderName  string `dynamodbav:"policyholder_name"`
	PolicyholderID    string `dynamodbav:"policyholder_id"`
	PolicyholderEmail string `dynamodbav:"policyholder_email"`
	PolicyholderPhone string `dynamodbav:"policyholder_phone"`
	PolicyNumber      string `dynamodbav:"policy_number"`
	CoverageType      string `dynamodbav:"coverage_type"`
	IncidentDate      string `dynamodbav:"incident_date"`
	Location          string `dynamodbav:"location"`
	Description       string `dynamodbav:"description"`
	DamageCategory    string `dynamodbav:"damage_category"`
	UserID            string `dynamodbav:"user_id"`
	InternalNote      string `dynamodbav:"internal_note,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
}

type activityItem struct {
	ClaimID   string `dynamodbav:"claim_id"`
	ID        string `dynamodbav:"id"`
	Action    string `dynamodbav:"action"`
	Details   string `dynamodbav:"details"`
	CreatedAt string `dynamodbav:"created_at"`
}

type claimNumberItem struct {
	ClaimNumber string `dynamodbav:"claim_number"`
	ClaimID     string `dynamodbav:"claim_id"`
}

// ClaimDynamoRepository persists claims and their activity log in DynamoDB.
//
// Table requirements:
//   - claims: PK id (string); GSI user_id-index (PK user_id, SK created_at)
//   - claim_activity: PK claim_id, SK id (ULID, so the sort key is chronological)
//   - claim_numbers: PK claim_number
//
// Writes that touch more than one table go through TransactWriteItems so a
// claim never exists without its log entry, and vice versa.

type ClaimDynamoRepository struct {
	ddb           DynamoDBAPI
	claimsTable   string
	activityTable string
	numbersTable  string
}

var _ interfaces.IClaimRepository = (*ClaimDynamoRepository)(nil)

func NewClaimDynamoRepository(ddb DynamoDBAPI) *ClaimDynamoRepository {
	return &ClaimDynamoRepository{
		ddb:           ddb,
		claimsTable:   getenvDefault("CLAIMS_TABLE", defaultClaimsTableName),
		activityTable: getenvDefault("CLAIM_ACTIVITY_TABLE", defaultActivityTableName),
		numbersTable:  getenvDefault("CLAIM_NUMBERS_TABLE", defaultClaimNumbersTableName),
	}
}

func (r *ClaimDynamoRepository) Create(ctx context.Context, c entities.Claim, entry entities.ActivityLogEntry) (entities.Claim, error) {
	numberAV, err := attributevalue.MarshalMap(claimNumberItem{ClaimNumber: c.ClaimNumber, ClaimID: c.ID})
	if err != nil {
		return entities.Claim{}, err
	}
	claimAV, err := attributevalue.MarshalMap(toClaimItem(c))
	if err != nil {
		return entities.Claim{}, err
	}
	entryAV, err := attributevalue.MarshalMap(toActivityItem(entry))
	if err != nil {
		return entities.Claim{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.numbersTable),
				Item:                     numberAV,
				ConditionExpression:      aws.String("attribute_not_exists(#cn)"),
				ExpressionAttributeNames: map[string]string{"#cn": "claim_number"},
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.claimsTable),
				Item:                     claimAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName: aws.String(r.activityTable),
				Item:      entryAV,
			}},
		},
	})
	if err != nil {
		if failed, ok := failedConditions(err); ok && len(failed) > 0 && failed[0] {
			return entities.Claim{}, interfaces.ErrClaimNumberTaken
		}
		return entities.Claim{}, fmt.Errorf("create claim: %w", err)
	}
	return c, nil
}

func (r *ClaimDynamoRepository) GetByID(ctx context.Context, id string) (entities.Claim, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.claimsTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Claim{}, err
	}
	if len(out.Item) == 0 {
		return entities.Claim{}, nil
	}

	var it claimItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Claim{}, err
	}
	return fromClaimItem(it), nil
}

func (r *ClaimDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Claim, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.claimsTable),
		IndexName:              aws.String(claimsUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	})

	claims := make([]entities.Claim, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		if claims, err = appendClaims(claims, page.Items); err != nil {
			return nil, err
		}
	}
	return claims, nil
}

func (r *ClaimDynamoRepository) ListAll(ctx context.Context) ([]entities.Claim, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.claimsTable),
	})

	claims := make([]entities.Claim, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		if claims, err = appendClaims(claims, page.Items); err != nil {
			return nil, err
		}
	}
	sortClaimsNewestFirst(claims)
	return claims, nil
}

// UpdateStatus sets the status (and the note, when given) and appends entry in
// one transaction. Last write wins; there is no version check.
func (r *ClaimDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.ClaimStatus, internalNote *string, entry entities.ActivityLogEntry) (entities.Claim, error) {
	entryAV, err := attributevalue.MarshalMap(toActivityItem(entry))
	if err != nil {
		return entities.Claim{}, err
	}

	expr := "SET #status = :status"
	vals := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: string(status)},
	}
	names := map[string]string{"#status": "status"}
	if internalNote != nil {
		expr += ", #note = :note"
		vals[":note"] = &types.AttributeValueMemberS{Value: *internalNote}
		names["#note"] = "internal_note"
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName: aws.String(r.claimsTable),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: id},
				},
				ConditionExpression:       aws.String("attribute_exists(#id)"),
				UpdateExpression:          aws.String(expr),
				ExpressionAttributeValues: vals,
				ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
			}},
			{Put: &types.Put{
				TableName: aws.String(r.activityTable),
				Item:      entryAV,
			}},
		},
	})
	if err != nil {
		if failed, ok := failedConditions(err); ok && len(failed) > 0 && failed[0] {
			return entities.Claim{}, nil
		}
		return entities.Claim{}, fmt.Errorf("update claim status: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ClaimDynamoRepository) ListActivity(ctx context.Context, claimID string) ([]entities.ActivityLogEntry, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.activityTable),
		KeyConditionExpression: aws.String("claim_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: claimID},
		},
		ScanIndexForward: aws.Bool(false),
		ConsistentRead:   aws.Bool(true),
	})

	entries := make([]entities.ActivityLogEntry, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it activityItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			entries = append(entries, fromActivityItem(it))
		}
	}
	return entries, nil
}

func appendClaims(dst []entities.Claim, items []map[string]types.AttributeValue) ([]entities.Claim, error) {
	for _, raw := range items {
		var it claimItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		dst = append(dst, fromClaimItem(it))
	}
	return dst, nil
}

func toClaimItem(c entities.Claim) claimItem {
	return claimItem{
		ID:                c.ID,
		ClaimNumber:       c.ClaimNumber,
		Type:              string(c.Type),
		Status:            string(c.Status),
		PolicyholderName:  c.PolicyholderName,
		PolicyholderID:    c.PolicyholderID,
		PolicyholderEmail: c.PolicyholderEmail,
		PolicyholderPhone: c.PolicyholderPhone,
		PolicyNumber:      c.PolicyNumber,
		CoverageType:      c.CoverageType,
		IncidentDate:      c.IncidentDate.UTC().Format(time.RFC3339Nano),
		Location:          c.Location,
		Description:       c.Description,
		DamageCategory:    c.DamageCategory,
		UserID:            c.UserID,
		InternalNote:      c.InternalNote,
		CreatedAt:         c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromClaimItem(it claimItem) entities.Claim {
	incidentDate, _ := time.Parse(time.RFC3339Nano, it.IncidentDate)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Claim{
		ID:                it.ID,
		ClaimNumber:       it.ClaimNumber,
		Type:              entities.ClaimType(it.Type),
		Status:            entities.ClaimStatus(it.Status),
		PolicyholderName:  it.PolicyholderName,
		PolicyholderID:    it.PolicyholderID,
		PolicyholderEmail: it.PolicyholderEmail,
		PolicyholderPhone: it.PolicyholderPhone,
		PolicyNumber:      it.PolicyNumber,
		CoverageType:      it.CoverageType,
		IncidentDate:      incidentDate,
		Location:          it.Location,
		Description:       it.Description,
		DamageCategory:    it.DamageCategory,
		UserID:            it.UserID,
		InternalNote:      it.InternalNote,
		CreatedAt:         createdAt,
	}
}

func toActivityItem(e entities.ActivityLogEntry) activityItem {
	return activityItem{
		ClaimID:   e.ClaimID,
		ID:        e.ID,
		Action:    string(e.Action),
		Details:   e.Details,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromActivityItem(it activityItem) entities.ActivityLogEntry {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.ActivityLogEntry{
		ID:        it.ID,
		ClaimID:   it.ClaimID,
		Action:    entities.ActivityAction(it.Action),
		Details:   it.Details,
		CreatedAt: createdAt,
	}
}
