package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/sushihentaime/recipehub/internal/common"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache, tokens *TokenManager, logger *slog.Logger) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		c:      c,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates an account, signs a session token for it and publishes a user.registered event.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	v := common.NewValidator()
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Name:  name,
		Email: email,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insert(ctx, &u)
	if err != nil {
		return nil, err
	}

	// the account exists at this point, a lost welcome mail must not fail the request
	data, err := json.Marshal(registeredEvent{Name: u.Name, Email: u.Email})
	if err != nil {
		return nil, err
	}

	if err := s.mb.Publish(ctx, data, common.UserRegisteredKey, common.UserExchange); err != nil {
		s.logger.Error("could not publish user registered event", "user_id", u.ID, "error", err)
	}

	return s.newSession(&u)
}

// Login checks the credentials and signs a new session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)

	v := common.NewValidator()
	v.Check(email != "", "email", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u, err := s.m.getByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}

	ok, err := u.Password.matches(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(u)
}

func (s *UserService) newSession(u *User) (*Session, error) {
	token, expiry, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:  token,
		Expiry: expiry,
		User:   u,
	}, nil
}

// Authenticate resolves a session token to its user. It returns ErrTokenExpired,
// ErrTokenInvalid or common.ErrRecordNotFound when the session cannot be used.
func (s *UserService) Authenticate(ctx context.Context, token string) (*User, error) {
	id, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	return s.GetUserByID(ctx, id)
}

// GetUserByID serves the user from the cache and falls back to the database.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyUser(id)
	if cached, ok := s.c.Get(key); ok {
		if u, ok := cached.(*User); ok {
			return u, nil
		}
	}

	u, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, u, UserCacheTime)

	return u, nil
}

func (s *UserService) GetProfile(ctx context.Context, id int) (*Profile, error) {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.m.stats(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Profile{User: u, Stats: stats}, nil
}

// UpdateProfile applies the non-nil fields of in and drops the cached user.
func (s *UserService) UpdateProfile(ctx context.Context, id int, in ProfileInput) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "user_id")
	validateProfile(v, in)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.Avatar != nil {
		u.Avatar = *in.Avatar
	}

	err = s.m.update(ctx, u)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyUser(id))

	return u, nil
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
