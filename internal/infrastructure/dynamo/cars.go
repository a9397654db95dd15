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

// CarRepo provides typed DynamoDB operations for the cars table.
// The table is keyed by registration number (unique per car) with a car_id
// GSI for lookups by id, mirroring the users table layout.
type CarRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCarRepo(client *dynamodb.Client, tableName string) *CarRepo {
	return &CarRepo{client: client, tableName: tableName}
}

// Create persists a new car. Fails with domain.ErrConflict if the
// registration number is already taken.
func (r *CarRepo) Create(ctx context.Context, c *domain.Car) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal car: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(registration_number)"),
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("registration number already exists: %w", domain.ErrConflict)
	}
	return err
}

func (r *CarRepo) ExistsByRegistration(ctx context.Context, registrationNumber string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("registration_number", registrationNumber),
	})
	if err != nil {
		return false, err
	}
	return out.Item != nil, nil
}

func (r *CarRepo) GetByID(ctx context.Context, carID string) (*domain.Car, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("car_id-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "car_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: carID}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("car not found: %w", domain.ErrNotFound)
	}
	var c domain.Car
	if err := attributevalue.UnmarshalMap(out.Items[0], &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update applies a partial update to the car identified by carID. Changing
// the registration number moves the record with a transactional put+delete,
// the same pattern the users table uses for email changes.
func (r *CarRepo) Update(ctx context.Context, carID string, updates map[string]interface{}) (*domain.Car, error) {
	c, err := r.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	newReg, regChanged := updates["registration_number"].(string)
	if regChanged && newReg != c.RegistrationNumber {
		return r.move(ctx, c, updates, newReg)
	}
	delete(updates, "registration_number")

	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return nil, err
	}
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("registration_number", c.RegistrationNumber),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(registration_number)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return nil, fmt.Errorf("car not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var updated domain.Car
	if err := attributevalue.UnmarshalMap(out.Attributes, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *CarRepo) move(ctx context.Context, c *domain.Car, updates map[string]interface{}, newReg string) (*domain.Car, error) {
	oldReg := c.RegistrationNumber
	applyCarUpdates(c, updates)
	c.RegistrationNumber = newReg
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return nil, fmt.Errorf("marshal car: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(registration_number)"),
			}},
			{Delete: &types.Delete{
				TableName:           aws.String(r.tableName),
				Key:                 strKey("registration_number", oldReg),
				ConditionExpression: aws.String("attribute_exists(registration_number)"),
			}},
		},
	})
	if err != nil {
		switch transactConflictIndex(err) {
		case 0:
			return nil, fmt.Errorf("registration number already exists: %w", domain.ErrConflict)
		case 1:
			return nil, fmt.Errorf("car not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

// Delete removes the car identified by carID and returns the removed record.
func (r *CarRepo) Delete(ctx context.Context, carID string) (*domain.Car, error) {
	c, err := r.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.tableName),
		Key:          strKey("registration_number", c.RegistrationNumber),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, err
	}
	if len(out.Attributes) == 0 {
		return nil, fmt.Errorf("car not found: %w", domain.ErrNotFound)
	}
	return c, nil
}

// Scan returns all cars. The inventory is small; pagination over it is
// handled in the application layer.
func (r *CarRepo) Scan(ctx context.Context) ([]domain.Car, error) {
	var cars []domain.Car
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Car
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		cars = append(cars, page...)
		if out.LastEvaluatedKey == nil {
			return cars, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func applyCarUpdates(c *domain.Car, updates map[string]interface{}) {
	for k, v := range updates {
		switch k {
		case "model":
			c.Model, _ = v.(string)
		case "make":
			c.Make, _ = v.(int)
		case "category":
			c.Category, _ = v.(string)
		case "color":
			c.Color, _ = v.(string)
		case "photo_key":
			c.PhotoKey, _ = v.(string)
		case "updated_at":
			if s, ok := v.(string); ok {
				if t, err := time.Parse(time.RFC3339, s); err == nil {
					c.UpdatedAt = t
				}
			}
		}
	}
}
