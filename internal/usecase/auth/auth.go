package auth

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	userDomain "baduk_arena/internal/domain/user"
	errs "baduk_arena/internal/errors"
)

const maxUsernameLen = 32

type AuthUsecaseHandler struct {
	sessionStorage SessionStorage
	now            func() time.Time
}

func NewUserUsecaseHandler(s SessionStorage) *AuthUsecaseHandler {
	return &AuthUsecaseHandler{
		sessionStorage: s,
		now:            time.Now,
	}
}

type SessionStorage interface {
	GetUserBySession(ctx context.Context, sessionID string) (userDomain.User, bool)
	StoreSession(ctx context.Context, sessionID string, u userDomain.User) error
	DeleteSession(ctx context.Context, sessionID string) (ok bool)
}

func (a *AuthUsecaseHandler) CheckAuthorized(ctx context.Context, sessionID string) (ok bool, user userDomain.User) {
	user, ok = a.sessionStorage.GetUserBySession(ctx, sessionID)
	return ok, user
}

// LoginGuest заводит гостя с указанным именем и возвращает ID сессии.
func (a *AuthUsecaseHandler) LoginGuest(ctx context.Context, username string) (sessionID string, user userDomain.User, err error) {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLen {
		return "", userDomain.User{}, errs.ErrBadUsername
	}
	user = userDomain.User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: a.now(),
	}
	sessionID = uuid.NewString()
	if err = a.sessionStorage.StoreSession(ctx, sessionID, user); err != nil {
		return "", userDomain.User{}, err
	}
	return sessionID, user, nil
}

// returns nil or ErrSessionNotFound
func (a *AuthUsecaseHandler) LogoutUser(ctx context.Context, sessionID string) (err error) {
	if ok := a.sessionStorage.DeleteSession(ctx, sessionID); !ok {
		return errs.ErrSessionNotFound
	}
	return nil
}

func (a *AuthUsecaseHandler) GetUserFromSession(ctx context.Context, sessionID string) (userDomain.User, error) {
	user, ok := a.sessionStorage.GetUserBySession(ctx, sessionID)
	if !ok {
		return userDomain.User{}, errs.ErrSessionNotFound
	}
	return user, nil
}
