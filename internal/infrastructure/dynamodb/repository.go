package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsv2dynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsv2types "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	awsv2xray "github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/google/uuid"
	"jobtracker/internal/domain"
)

const ownerIndex = "OwnerIndex"
const emailIndex = "EmailIndex"

type Client struct {
	db        *awsv2dynamodb.Client
	tableName string
}

func NewClient(ctx context.Context, region, tableName string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	awsv2xray.AWSV2Instrumentor(&cfg.APIOptions)
	client := awsv2dynamodb.NewFromConfig(cfg)
	return &Client{db: client, tableName: tableName}, nil
}

func jobPK(jobID string) string        { return "JOB#" + jobID }
func metaSK() string                   { return "META" }
func ownerGSIPK(ownerID string) string { return "USER#" + ownerID }
func userSK(userID string) string      { return "PROFILE#" + userID }
func testimonialSK(id string) string   { return "T#" + id }
func contactSK(id string) string       { return "C#" + id }

func isConditionalCheckFailure(err error) bool {
	var condErr *awsv2types.ConditionalCheckFailedException
	return errors.As(err, &condErr)
}

type JobRepository struct{ client *Client }

type UserRepository struct{ client *Client }

type TestimonialRepository struct{ client *Client }

type ContactMessageRepository struct{ client *Client }

func NewJobRepository(client *Client) *JobRepository {
	return &JobRepository{client: client}
}

func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client}
}

func NewTestimonialRepository(client *Client) *TestimonialRepository {
	return &TestimonialRepository{client: client}
}

func NewContactMessageRepository(client *Client) *ContactMessageRepository {
	return &ContactMessageRepository{client: client}
}

type rawJob struct {
	ID          string `dynamodbav:"ID"`
	OwnerID     string `dynamodbav:"OwnerID"`
	Company     string `dynamodbav:"Company"`
	Role        string `dynamodbav:"Role"`
	Status      string `dynamodbav:"Status"`
	AppliedDate string `dynamodbav:"AppliedDate"`
	Link        string `dynamodbav:"Link"`
	Notes       string `dynamodbav:"Notes"`
	CreatedAt   string `dynamodbav:"CreatedAt"`
	UpdatedAt   string `dynamodbav:"UpdatedAt"`
}

func (raw rawJob) toDomain() domain.Job {
	appliedDate, _ := time.Parse(time.RFC3339, raw.AppliedDate)
	createdAt, _ := time.Parse(time.RFC3339, raw.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, raw.UpdatedAt)
	return domain.Job{
		ID:          raw.ID,
		OwnerID:     raw.OwnerID,
		Company:     raw.Company,
		Role:        raw.Role,
		Status:      domain.Status(raw.Status),
		AppliedDate: appliedDate,
		Link:        raw.Link,
		Notes:       raw.Notes,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

func jobItem(job domain.Job) map[string]any {
	return map[string]any{
		"PK":          jobPK(job.ID),
		"SK":          metaSK(),
		"EntityType":  "JOB",
		"GSI1PK":      ownerGSIPK(job.OwnerID),
		"GSI1SK":      job.AppliedDate.Format(time.RFC3339),
		"ID":          job.ID,
		"OwnerID":     job.OwnerID,
		"Company":     job.Company,
		"Role":        job.Role,
		"Status":      string(job.Status),
		"AppliedDate": job.AppliedDate.Format(time.RFC3339),
		"Link":        job.Link,
		"Notes":       job.Notes,
		"CreatedAt":   job.CreatedAt.Format(time.RFC3339),
		"UpdatedAt":   job.UpdatedAt.Format(time.RFC3339),
	}
}

func (r *JobRepository) Create(ctx context.Context, job domain.Job) (domain.Job, error) {
	job.ID = uuid.NewString()
	av, err := attributevalue.MarshalMap(jobItem(job))
	if err != nil {
		return domain.Job{}, err
	}
	err = xray.Capture(ctx, "DynamoDB.PutJob", func(ctx context.Context) error {
		_, err := r.client.db.PutItem(ctx, &awsv2dynamodb.PutItemInput{
			TableName:           aws.String(r.client.tableName),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
		})
		return err
	})
	if err != nil {
		return domain.Job{}, err
	}
	return job, nil
}

func (r *JobRepository) GetByID(ctx context.Context, jobID string) (domain.Job, error) {
	var out *awsv2dynamodb.GetItemOutput
	err := xray.Capture(ctx, "DynamoDB.GetJob", func(ctx context.Context) error {
		var e error
		out, e = r.client.db.GetItem(ctx, &awsv2dynamodb.GetItemInput{
			TableName: aws.String(r.client.tableName),
			Key: map[string]awsv2types.AttributeValue{
				"PK": &awsv2types.AttributeValueMemberS{Value: jobPK(jobID)},
				"SK": &awsv2types.AttributeValueMemberS{Value: metaSK()},
			},
		})
		return e
	})
	if err != nil {
		return domain.Job{}, err
	}
	if out.Item == nil {
		return domain.Job{}, domain.ErrNotFound
	}
	raw := rawJob{}
	if err := attributevalue.UnmarshalMap(out.Item, &raw); err != nil {
		return domain.Job{}, err
	}
	return raw.toDomain(), nil
}

func (r *JobRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Job, error) {
	var out *awsv2dynamodb.QueryOutput
	err := xray.Capture(ctx, "DynamoDB.QueryJobsByOwner", func(ctx context.Context) error {
		var e error
		out, e = r.client.db.Query(ctx, &awsv2dynamodb.QueryInput{
			TableName:              aws.String(r.client.tableName),
			IndexName:              aws.String(ownerIndex),
			KeyConditionExpression: aws.String("GSI1PK = :pk"),
			ExpressionAttributeValues: map[string]awsv2types.AttributeValue{
				":pk": &awsv2types.AttributeValueMemberS{Value: ownerGSIPK(ownerID)},
			},
			// GSI1SK is the applied date; newest first.
			ScanIndexForward: aws.Bool(false),
		})
		return e
	})
	if err != nil {
		return nil, err
	}
	jobs := make([]domain.Job, 0, len(out.Items))
	for _, item := range out.Items {
		raw := rawJob{}
		if err := attributevalue.UnmarshalMap(item, &raw); err != nil {
			return nil, err
		}
		jobs = append(jobs, raw.toDomain())
	}
	return jobs, nil
}

func (r *JobRepository) Update(ctx context.Context, job domain.Job) error {
	av, err := attributevalue.MarshalMap(jobItem(job))
	if err != nil {
		return err
	}
	return xray.Capture(ctx, "DynamoDB.UpdateJob", func(ctx context.Context) error {
		_, err := r.client.db.PutItem(ctx, &awsv2dynamodb.PutItemInput{
			TableName:           aws.String(r.client.tableName),
			Item:                av,
			ConditionExpression: aws.String("attribute_exists(PK) AND attribute_exists(SK)"),
		})
		if isConditionalCheckFailure(err) {
			return domain.ErrNotFound
		}
		return err
	})
}

func (r *JobRepository) Delete(ctx context.Context, jobID string) error {
	return xray.Capture(ctx, "DynamoDB.DeleteJob", func(ctx context.Context) error {
		_, err := r.client.db.DeleteItem(ctx, &awsv2dynamodb.DeleteItemInput{
			TableName: aws.String(r.client.tableName),
			Key: map[string]awsv2types.AttributeValue{
				"PK": &awsv2types.AttributeValueMemberS{Value: jobPK(jobID)},
				"SK": &awsv2types.AttributeValueMemberS{Value: metaSK()},
			},
			ConditionExpression: aws.String("attribute_exists(PK)"),
		})
		if isConditionalCheckFailure(err) {
			return domain.ErrNotFound
		}
		return err
	})
}

type rawUser struct {
	ID           string `dynamodbav:"ID"`
	Name         string `dynamodbav:"Name"`
	Email        string `dynamodbav:"Email"`
	PasswordHash string `dynamodbav:"PasswordHash"`
	Role         string `dynamodbav:"Role"`
	CreatedAt    string `dynamodbav:"CreatedAt"`
	UpdatedAt    string `dynamodbav:"UpdatedAt"`
}

func (raw rawUser) toDomain() domain.User {
	createdAt, _ := time.Parse(time.RFC3339, raw.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, raw.UpdatedAt)
	return domain.User{
		ID:           raw.ID,
		Name:         raw.Name,
		Email:        raw.Email,
		PasswordHash: raw.PasswordHash,
		Role:         raw.Role,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

func userItem(user domain.User) map[string]any {
	return map[string]any{
		"PK":           "USER",
		"SK":           userSK(user.ID),
		"EntityType":   "USER",
		"ID":           user.ID,
		"Name":         user.Name,
		"Email":        user.Email,
		"PasswordHash": user.PasswordHash,
		"Role":         user.Role,
		"CreatedAt":    user.CreatedAt.Format(time.RFC3339),
		"UpdatedAt":    user.UpdatedAt.Format(time.RFC3339),
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if _, err := r.GetByEmail(ctx, user.Email); err == nil {
		return domain.User{}, fmt.Errorf("%w: email already in use", domain.ErrInvalidInput)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}
	user.ID = uuid.NewString()
	av, err := attributevalue.MarshalMap(userItem(user))
	if err != nil {
		return domain.User{}, err
	}
	err = xray.Capture(ctx, "DynamoDB.PutUser", func(ctx context.Context) error {
		_, err := r.client.db.PutItem(ctx, &awsv2dynamodb.PutItemInput{
			TableName:           aws.String(r.client.tableName),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
		})
		return err
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (domain.User, error) {
	var out *awsv2dynamodb.GetItemOutput
	err := xray.Capture(ctx, "DynamoDB.GetUser", func(ctx context.Context) error {
		var e error
		out, e = r.client.db.GetItem(ctx, &awsv2dynamodb.GetItemInput{
			TableName: aws.String(r.client.tableName),
			Key: map[string]awsv2types.AttributeValue{
				"PK": &awsv2types.AttributeValueMemberS{Value: "USER"},
				"SK": &awsv2types.AttributeValueMemberS{Value: userSK(userID)},
			},
		})
		return e
	})
	if err != nil {
		return domain.User{}, err
	}
	if out.Item == nil {
		return domain.User{}, domain.ErrNotFound
	}
	raw := rawUser{}
	if err := attributevalue.UnmarshalMap(out.Item, &raw); err != nil {
		return domain.User{}, err
	}
	return raw.toDomain(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var out *awsv2dynamodb.QueryOutput
	err := xray.Capture(ctx, "DynamoDB.QueryUserByEmail", func(ctx context.Context) error {
		var e error
		out, e = r.client.db.Query(ctx, &awsv2dynamodb.QueryInput{
			TableName:              aws.String(r.client.tableName),
			IndexName:              aws.String(emailIndex),
			KeyConditionExpression: aws.String("Email = :email"),
			ExpressionAttributeValues: map[string]awsv2types.AttributeValue{
				":email": &awsv2types.AttributeValueMemberS{Value: email},
			},
			Limit: aws.Int32(1),
		})
		return e
	})
	if err != nil {
		return domain.User{}, err
	}
	if len(out.Items) == 0 {
		return domain.User{}, domain.ErrNotFound
	}
	raw := rawUser{}
	if err := attributevalue.UnmarshalMap(out.Items[0], &raw); err != nil {
		return domain.User{}, err
	}
	return raw.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var out *awsv2dynamodb.QueryOutput
	err := xray.Capture(ctx, "DynamoDB.QueryUsers", func(ctx context.Context) error {
		var e error
		out, e = r.client.db.Query(ctx, &awsv2dynamodb.QueryInput{
			TableName:              aws.String(r.client.tableName),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
			ExpressionAttributeValues: map[string]awsv2types.AttributeValue{
				":pk": &awsv2types.AttributeValueMemberS{Value: "USER"},
				":sk": &awsv2types.AttributeValueMemberS{Value: "PROFILE#"},
			},
		})
		return e
	})
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(out.Items))
	for _, item := range out.Items {
		raw := rawUser{}
		if err := attributevalue.UnmarshalMap(item, &raw); err != nil {
			return nil, err
		}
		users = append(users, raw.toDomain())
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	av, err := attributevalue.MarshalMap(userItem(user))
	if err != nil {
		return err
	}
	return xray.Capture(ctx, "DynamoDB.UpdateUser", func(ctx context.Context) error {
		_, err := r.client.db.PutItem(ctx, &awsv2dynamodb.PutItemInput{
			TableName:           aws.String(r.client.tableName),
			Item:                av,
			ConditionExpression: aws.String("attribute_exists(PK) AND attribute_exists(SK)"),
		})
		if isConditionalCheckFailure(err) {
			return domain.ErrNotFound
		}
		return err
	})
}

func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	return xray.Capture(ctx, "DynamoDB.DeleteUser", func(ctx context.Context) error {
		_, err := r.client.db.DeleteItem(ctx, &awsv2dynamodb.DeleteItemInput{
			TableName: aws.String(r.client.tableName),
			Key: map[string]awsv2types.AttributeValue{
				"PK": &awsv2types.AttributeValueMemberS{Value: "USER"},
				"SK": &awsv2types.AttributeValueMemberS{Value: userSK(userID)},
			},
			ConditionExpression: aws.String("attribute_exists(PK)"),
		})
		if isConditionalCheckFailure(err) {
			return domain.ErrNotFound
		}
		return err
	})
}

func (r *TestimonialRepository) Create(ctx context.Context, testimonial domain.Testimonial) (domain.Testimonial, error) {
	testimonial.ID = uuid.NewString()
	item := map[string]any{
		"PK":         "TESTIMONIAL",
		"SK":         testimonialSK(testimonial.ID),
		"EntityType": "TESTIMONIAL",
		"ID":         testimonial.ID,
		"Author":     testimonial.Author,
		"Quote":      testimonial.Quote,
		"CreatedAt":  testimonial.CreatedAt.Format(time.RFC3339),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return domain.Testimonial{}, err
	}
	err = xray.Capture(ctx, "DynamoDB.PutTestimonial", func(ctx context.Context) error {
		_, err := r.client.db.PutItem(ctx, &awsv2dynamodb.PutItemInput{
			TableName:           aws.String(r.client.tableName),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
		})
		return err
	})
	if err != nil {
		return domain.Testimonial{}, err
	}
	return testimonial, nil
}

func (r *TestimonialRepository) List(ctx context.Context) ([]domain.Testimonial, error) {
	var out *awsv2dynamodb.QueryOutput
	err := xray.Capture(ctx, "DynamoDB.QueryTestimonials", func(ctx context.Context) error {
		var e error
		out, e = r.client.db.Query(ctx, &awsv2dynamodb.QueryInput{
			TableName:              aws.String(r.client.tableName),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
			ExpressionAttributeValues: map[string]awsv2types.AttributeValue{
				":pk": &awsv2types.AttributeValueMemberS{Value: "TESTIMONIAL"},
				":sk": &awsv2types.AttributeValueMemberS{Value: "T#"},
			},
		})
		return e
	})
	if err != nil {
		return nil, err
	}
	testimonials := make([]domain.Testimonial, 0, len(out.Items))
	for _, item := range out.Items {
		raw := struct {
			ID        string `dynamodbav:"ID"`
			Author    string `dynamodbav:"Author"`
			Quote     string `dynamodbav:"Quote"`
			CreatedAt string `dynamodbav:"CreatedAt"`
		}{}
		if err := attributevalue.UnmarshalMap(item, &raw); err != nil {
			return nil, err
		}
		createdAt, _ := time.Parse(time.RFC3339, raw.CreatedAt)
		testimonials = append(testimonials, domain.Testimonial{ID: raw.ID, Author: raw.Author, Quote: raw.Quote, CreatedAt: createdAt})
	}
	return testimonials, nil
}

func (r *ContactMessageRepository) Create(ctx context.Context, message domain.ContactMessage) (domain.ContactMessage, error) {
	message.ID = uuid.NewString()
	item := map[string]any{
		"PK":         "CONTACT",
		"SK":         contactSK(message.ID),
		"EntityType": "CONTACT_MESSAGE",
		"ID":         message.ID,
		"Name":       message.Name,
		"Email":      message.Email,
		"Message":    message.Message,
		"CreatedAt":  message.CreatedAt.Format(time.RFC3339),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return domain.ContactMessage{}, err
	}
	err = xray.Capture(ctx, "DynamoDB.PutContactMessage", func(ctx context.Context) error {
		_, err := r.client.db.PutItem(ctx, &awsv2dynamodb.PutItemInput{
			TableName:           aws.String(r.client.tableName),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
		})
		return err
	})
	if err != nil {
		return domain.ContactMessage{}, err
	}
	return message, nil
}
