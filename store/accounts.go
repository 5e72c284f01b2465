package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"storefront/models"
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
)

// AccountStore stores customer logins in the "users" collection
type AccountStore struct {
	Collection *mongo.Collection
	Cost       int
}

func NewAccountStore(db *mongo.Database) *AccountStore {
	return &AccountStore{Collection: db.Collection("users"), Cost: bcrypt.DefaultCost}
}

// Register creates a customer account with a hashed password.
func (s *AccountStore) Register(ctx context.Context, name, email, password string) (models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return models.Account{}, ErrInvalidCredentials
	}

	count, err := s.Collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return models.Account{}, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return models.Account{}, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w", err)
	}

	acct := models.Account{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashed),
		Role:     "user",
	}
	if _, err := s.Collection.InsertOne(ctx, acct); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Account{}, ErrEmailTaken
		}
		return models.Account{}, fmt.Errorf("insert user: %w", err)
	}
	return acct, nil
}

// Authenticate checks the password of the account with that email.
func (s *AccountStore) Authenticate(ctx context.Context, email, password string) (models.Account, error) {
	var acct models.Account
	err := s.Collection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&acct)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(password)) != nil {
		return models.Account{}, ErrInvalidCredentials
	}
	return acct, nil
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (models.Account, error) {
	var acct models.Account
	err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&acct)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("find user: %w", err)
	}
	return acct, nil
}
