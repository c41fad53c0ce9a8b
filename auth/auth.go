package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
	suuid "github.com/satori/go.uuid"

	"github.com/noisersup/files-manager-api/database"
	"github.com/noisersup/files-manager-api/models"
)

// Covers every credential failure: wrong password, unknown email,
// missing token, expired token. Callers never learn which one it was.
var Unauthorized error = errors.New("Unauthorized")

const tokenPrefix = "auth_"
const sessionExpiry = 24 * time.Hour

type Auth struct {
	db    models.Database
	cache models.Cache
}

func InitAuth(db models.Database, cache models.Cache) *Auth {
	return &Auth{db: db, cache: cache}
}

/*
	Takes email and password as input and returns a fresh
	session token if credentials are valid
*/
func (a *Auth) SignIn(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", Unauthorized
	}

	user, err := a.db.GetUserByCreds(email, database.HashPassword(password))
	if err != nil {
		if errors.Is(err, database.UserNotFound) {
			return "", Unauthorized
		}
		return "", err
	}

	sessionToken := suuid.NewV4().String()

	if err = a.cache.Set(tokenPrefix+sessionToken, user.Id.String(), sessionExpiry); err != nil {
		return "", err
	}

	return sessionToken, nil
}

// Kills the session behind the token. A second call with the
// same token fails with Unauthorized, the session is already gone.
func (a *Auth) SignOut(token string) error {
	if _, err := a.Authorize(token); err != nil {
		return err
	}
	return a.cache.Del(tokenPrefix + token)
}

// Resolves a session token to the id of the user holding it.
// No side effects, invoked by every authenticated operation.
func (a *Auth) Authorize(token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, Unauthorized
	}

	value, err := a.cache.Get(tokenPrefix + token)
	if err != nil {
		return uuid.Nil, err
	}
	if value == "" {
		return uuid.Nil, Unauthorized
	}

	userId, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, Unauthorized
	}

	return userId, nil
}
