package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hostelhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type UserRepository interface {
	Insert(ctx context.Context, u models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	TouchLogin(ctx context.Context, userID string, at time.Time) error
}

type memoryUsers struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
}

func NewMemoryUsers() UserRepository {
	return &memoryUsers{byEmail: make(map[string]models.User)}
}

func (m *memoryUsers) Insert(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byEmail[email]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *memoryUsers) TouchLogin(_ context.Context, userID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for email, u := range m.byEmail {
		if u.UserID == userID {
			u.LastLogin = at
			m.byEmail[email] = u
			return nil
		}
	}
	return ErrUserNotFound
}

type mongoUsers struct {
	coll *mongo.Collection
}

// NewMongoUsers relies on the unique email index created by db.Connect.
func NewMongoUsers(coll *mongo.Collection) UserRepository {
	return &mongoUsers{coll: coll}
}

func (m *mongoUsers) Insert(ctx context.Context, u models.User) error {
	_, err := m.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (m *mongoUsers) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := m.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (m *mongoUsers) TouchLogin(ctx context.Context, userID string, at time.Time) error {
	res, err := m.coll.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": bson.M{"last_login": at}})
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
