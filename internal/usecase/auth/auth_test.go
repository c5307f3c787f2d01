package auth

import (
	"context"
	"strings"
	"testing"

	userDomain "baduk_arena/internal/domain/user"
	errs "baduk_arena/internal/errors"
)

type mapSessionStorage map[string]userDomain.User

func (m mapSessionStorage) GetUserBySession(_ context.Context, sessionID string) (userDomain.User, bool) {
	u, ok := m[sessionID]
	return u, ok
}

func (m mapSessionStorage) StoreSession(_ context.Context, sessionID string, u userDomain.User) error {
	m[sessionID] = u
	return nil
}

func (m mapSessionStorage) DeleteSession(_ context.Context, sessionID string) bool {
	if _, ok := m[sessionID]; !ok {
		return false
	}
	delete(m, sessionID)
	return true
}

func TestLoginGuest(t *testing.T) {
	storage := mapSessionStorage{}
	a := NewUserUsecaseHandler(storage)
	ctx := context.Background()

	sessionID, user, err := a.LoginGuest(ctx, "  alice ")
	if err != nil {
		t.Fatalf("LoginGuest: %v", err)
	}
	if user.Username != "alice" || user.ID == "" {
		t.Fatalf("unexpected user %+v", user)
	}
	if ok, got := a.CheckAuthorized(ctx, sessionID); !ok || got.ID != user.ID {
		t.Fatalf("session must resolve to the user, got %+v", got)
	}

	if err = a.LogoutUser(ctx, sessionID); err != nil {
		t.Fatalf("LogoutUser: %v", err)
	}
	if _, err = a.GetUserFromSession(ctx, sessionID); !errs.Is(err, errs.ErrSessionNotFound) {
		t.Fatalf("expected session not found after logout, got %v", err)
	}
	if err = a.LogoutUser(ctx, sessionID); !errs.Is(err, errs.ErrSessionNotFound) {
		t.Fatalf("second logout must fail, got %v", err)
	}
}

func TestLoginGuestRejectsBadNames(t *testing.T) {
	a := NewUserUsecaseHandler(mapSessionStorage{})
	for _, name := range []string{"", "   ", strings.Repeat("я", maxUsernameLen+1)} {
		if _, _, err := a.LoginGuest(context.Background(), name); !errs.Is(err, errs.ErrBadUsername) {
			t.Fatalf("name %q: expected ErrBadUsername, got %v", name, err)
		}
	}
}
