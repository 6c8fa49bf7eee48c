package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/milangdev/moviefi-test-task/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type UserRepository struct {
	client *dynamodb.Client
	table  string
	now    func() time.Time
}

type userItem struct {
	Email        string `dynamodbav:"email"`
	ID           string `dynamodbav:"id"`
	Name         string `dynamodbav:"name"`
	PasswordHash string `dynamodbav:"password_hash"`
	CreatedAt    string `dynamodbav:"created_at"`
}

func NewUserRepository(client *dynamodb.Client, table string) *UserRepository {
	return &UserRepository{
		client: client,
		table:  table,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if err := validateTable(r.table); err != nil {
		return user.User{}, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return user.User{}, fmt.Errorf("dynamodb: get user: %w", err)
	}
	if len(out.Item) == 0 {
		return user.User{}, user.ErrUserNotFound
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return user.User{}, fmt.Errorf("dynamodb: unmarshal user: %w", err)
	}

	return toDomainUser(item), nil
}

func (r *UserRepository) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if err := validateTable(r.table); err != nil {
		return user.User{}, err
	}

	id := u.ID
	if id == "" {
		id = uuid.NewString()
	}

	item := userItem{
		Email:        u.Email,
		ID:           id,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    r.now().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return user.User{}, fmt.Errorf("dynamodb: marshal user: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return user.User{}, user.ErrEmailAlreadyExists
		}
		return user.User{}, fmt.Errorf("dynamodb: put user: %w", err)
	}

	return toDomainUser(item), nil
}

func toDomainUser(item userItem) user.User {
	u := user.User{
		ID:           item.ID,
		Name:         item.Name,
		Email:        item.Email,
		PasswordHash: item.PasswordHash,
	}
	if item.CreatedAt != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, item.CreatedAt); err == nil {
			u.CreatedAt = parsed.UTC()
		}
	}
	return u
}
