package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/AadiZee/car-system-api/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UserRepo provides typed DynamoDB operations for the users table.
//
// The table is keyed by email, so uniqueness is a property of the store
// itself: Create uses a conditional put and UpdateEmail a transactional
// put+delete. The application-level existence pre-check is only an
// optimization for a friendlier error message.
type UserRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewUserRepo(client *dynamodb.Client, tableName string) *UserRepo {
	return &UserRepo{client: client, tableName: tableName}
}

// Create persists a new user. Fails with domain.ErrConflict if the email is
// already taken, even under concurrent registration.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("email already exists: %w", domain.ErrConflict)
	}
	return err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID resolves a user by its opaque id via the user_id GSI.
func (r *UserRepo) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "user_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: userID}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Items[0], &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return false, err
	}
	return out.Item != nil, nil
}

// UpdateEmail moves the record from oldEmail to newEmail atomically.
// The put and delete run in one transaction: if newEmail is taken the whole
// transaction cancels and the old record is untouched.
func (r *UserRepo) UpdateEmail(ctx context.Context, oldEmail, newEmail string) (*domain.User, error) {
	u, err := r.GetByEmail(ctx, oldEmail)
	if err != nil {
		return nil, err
	}
	u.Email = newEmail
	u.UpdatedAt = time.Now().UTC()
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(email)"),
			}},
			{Delete: &types.Delete{
				TableName:           aws.String(r.tableName),
				Key:                 strKey("email", oldEmail),
				ConditionExpression: aws.String("attribute_exists(email)"),
			}},
		},
	})
	if err != nil {
		switch transactConflictIndex(err) {
		case 0:
			return nil, fmt.Errorf("new email already exists: %w", domain.ErrConflict)
		case 1:
			return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

// UpdatePassword replaces the stored password hash for email.
func (r *UserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	ue, err := buildUpdateExpr(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("email", email),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(email)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Attributes, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes the record keyed by email. Fails with domain.ErrNotFound
// if no record was removed.
func (r *UserRepo) Delete(ctx context.Context, email string) error {
	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.tableName),
		Key:          strKey("email", email),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return err
	}
	if len(out.Attributes) == 0 {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return nil
}
