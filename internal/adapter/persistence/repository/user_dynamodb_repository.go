package repository

import (
	"context"
	"errors"
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
	defaultUsersTableName      = "users"
	defaultUserEmailsTableName = "user_emails"
	usersEmailIndex            = "email-index"

	// BatchGetItem accepts at most 100 keys per request.
	batchGetLimit = 100
)

type userItem struct {
	ID               string `dynamodbav:"id"`
	Name             string `dynamodbav:"name"`
	Email            string `dynamodbav:"email"`
	PasswordHash     string `dynamodbav:"password_hash"`
	Role             string `dynamodbav:"role"`
	InsuranceCompany string `dynamodbav:"insurance_company,omitempty"`
	CreatedAt        string `dynamodbav:"created_at"`
}

type userEmailItem struct {
	Email  string `dynamodbav:"email"`
	UserID string `dynamodbav:"user_id"`
}

// UserDynamoRepository persists user accounts in DynamoDB.
//
// Table requirements:
//   - users: PK id (string); GSI email-index (PK email)
//   - user_emails: PK email, one item per registered address
//
// The GSI alone cannot enforce uniqueness, so registration writes the
// user_emails guard item in the same transaction as the user.

type UserDynamoRepository struct {
	ddb         DynamoDBAPI
	usersTable  string
	emailsTable string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb DynamoDBAPI) *UserDynamoRepository {
	return &UserDynamoRepository{
		ddb:         ddb,
		usersTable:  getenvDefault("USERS_TABLE", defaultUsersTableName),
		emailsTable: getenvDefault("USER_EMAILS_TABLE", defaultUserEmailsTableName),
	}
}

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	guardAV, err := attributevalue.MarshalMap(userEmailItem{Email: u.Email, UserID: u.ID})
	if err != nil {
		return entities.User{}, err
	}
	userAV, err := attributevalue.MarshalMap(toUserItem(u))
	if err != nil {
		return entities.User{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.emailsTable),
				Item:                     guardAV,
				ConditionExpression:      aws.String("attribute_not_exists(#email)"),
				ExpressionAttributeNames: map[string]string{"#email": "email"},
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.usersTable),
				Item:                     userAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if err != nil {
		if failed, ok := failedConditions(err); ok && len(failed) > 0 && failed[0] {
			return entities.User{}, interfaces.ErrEmailTaken
		}
		return entities.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.usersTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.User, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.usersTable),
		IndexName:              aws.String(usersEmailIndex),
		KeyConditionExpression: aws.String("email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Items) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) GetByIDs(ctx context.Context, ids []string) (map[string]entities.User, error) {
	users := make(map[string]entities.User, len(ids))
	for start := 0; start < len(ids); start += batchGetLimit {
		end := min(start+batchGetLimit, len(ids))

		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range ids[start:end] {
			keys = append(keys, map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: id},
			})
		}

		request := map[string]types.KeysAndAttributes{
			r.usersTable: {Keys: keys},
		}
		for len(request) > 0 {
			out, err := r.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return nil, err
			}
			for _, raw := range out.Responses[r.usersTable] {
				var it userItem
				if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
					return nil, err
				}
				users[it.ID] = fromUserItem(it)
			}
			request = out.UnprocessedKeys
		}
	}
	return users, nil
}

func (r *UserDynamoRepository) UpdateInsuranceCompany(ctx context.Context, id string, company string) (entities.User, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.usersTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #company = :company"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":company": &types.AttributeValueMemberS{Value: company},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#company": "insurance_company",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.User{}, nil
		}
		return entities.User{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func toUserItem(u entities.User) userItem {
	return userItem{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		Role:             string(u.Role),
		InsuranceCompany: u.InsuranceCompany,
		CreatedAt:        u.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromUserItem(it userItem) entities.User {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.User{
		ID:               it.ID,
		Name:             it.Name,
		Email:            it.Email,
		PasswordHash:     it.PasswordHash,
		Role:             entities.Role(it.Role),
		InsuranceCompany: it.InsuranceCompany,
		CreatedAt:        createdAt,
	}
}
