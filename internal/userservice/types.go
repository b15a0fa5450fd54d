package userservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/sushihentaime/recipehub/internal/common"
)

const (
	// UserCacheTime is how long a resolved session user stays in the in-process cache.
	UserCacheTime = time.Minute
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      *UserModel
	mb     common.MessageProducer
	c      *common.Cache
	tokens *TokenManager
	logger *slog.Logger
}

type UserModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Version   int       `json:"-"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// Session is what register and login hand back to the HTTP layer.
type Session struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"-"`
	User   *User     `json:"user"`
}

type Stats struct {
	Videos    int `json:"videos"`
	Blogs     int `json:"blogs"`
	Followers int `json:"followers"`
	Following int `json:"following"`
}

type Profile struct {
	*User
	Stats Stats `json:"stats"`
}

// ProfileInput holds a partial profile update. Nil fields are left unchanged.
type ProfileInput struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

type registeredEvent struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
