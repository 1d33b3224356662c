package authstub

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pawconnect/platform/internal/core/domain"
)

const accountCollection = "stub_accounts"

// MongoRepository persists stub accounts in MongoDB, for a development
// environment that survives restarts. The unique index on email is expected
// to exist; duplicate inserts map to domain.ErrUserExists.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(accountCollection)}
}

type mongoAccount struct {
	ID                   string `bson:"_id"`
	Email                string `bson:"email"`
	Name                 string `bson:"name"`
	Role                 string `bson:"role"`
	Avatar               string `bson:"avatar,omitempty"`
	Phone                string `bson:"phone,omitempty"`
	Organization         string `bson:"organization,omitempty"`
	PasswordHash         string `bson:"password_hash"`
	Verified             bool   `bson:"verified"`
	VerificationDocument string `bson:"verification_document,omitempty"`
	CreatedAt            int64  `bson:"created_at"`
}

func (r *MongoRepository) Create(ctx context.Context, account *Account) (*Account, error) {
	doc := toMongoAccount(account)
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	if n, err := r.coll.CountDocuments(ctx, bson.M{"email": doc.Email}); err != nil {
		return nil, fmt.Errorf("check account email: %w", err)
	} else if n > 0 {
		return nil, domain.ErrUserExists
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return fromMongoAccount(doc), nil
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) Update(ctx context.Context, account *Account) (*Account, error) {
	doc := toMongoAccount(account)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return fromMongoAccount(doc), nil
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*Account, error) {
	var doc mongoAccount
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return fromMongoAccount(doc), nil
}

func toMongoAccount(a *Account) mongoAccount {
	return mongoAccount{
		ID:                   a.User.ID,
		Email:                a.User.Email,
		Name:                 a.User.Name,
		Role:                 string(a.User.Role),
		Avatar:               a.User.Avatar,
		Phone:                a.User.Phone,
		Organization:         a.User.Organization,
		PasswordHash:         a.PasswordHash,
		Verified:             a.Verified,
		VerificationDocument: a.VerificationDocument,
		CreatedAt:            a.User.CreatedAt.Unix(),
	}
}

func fromMongoAccount(doc mongoAccount) *Account {
	return &Account{
		User: domain.User{
			ID:           doc.ID,
			Email:        doc.Email,
			Name:         doc.Name,
			Role:         domain.Role(doc.Role),
			Avatar:       doc.Avatar,
			Phone:        doc.Phone,
			Organization: doc.Organization,
			CreatedAt:    unixToTime(doc.CreatedAt),
		},
		PasswordHash:         doc.PasswordHash,
		Verified:             doc.Verified,
		VerificationDocument: doc.VerificationDocument,
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

var _ Repository = (*MongoRepository)(nil)
