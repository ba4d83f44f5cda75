package service

import (
	"testing"

	"go.uber.org/zap"

	"hoa-service/pkg/jwtutil"
)

// testEnv wires every service against one shared in-memory store.
type testEnv struct {
	store        *fakeStore
	users        *fakeUsers
	associations *fakeAssociations
	memberships  *fakeMemberships

	auth            *AuthService
	access          *AccessService
	associationsSvc *AssociationService
	usersSvc        *UserService
	tokens          *jwtutil.JWTUtil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newFakeStore()
	users := &fakeUsers{s: store}
	associations := &fakeAssociations{s: store}
	memberships := &fakeMemberships{s: store}

	tokens, err := jwtutil.New(&jwtutil.Config{
		AccessSigningKey:  "test-access-signing-key-0123456789ab",
		RefreshSigningKey: "test-refresh-signing-key-0123456789a",
		Issuer:            "hoa-service",
		Audience:          "hoa-api",
	})
	if err != nil {
		t.Fatalf("jwtutil: %v", err)
	}

	log := zap.NewNop()
	access := NewAccessService(associations, memberships, users, log)
	return &testEnv{
		store:           store,
		users:           users,
		associations:    associations,
		memberships:     memberships,
		auth:            NewAuthService(users, tokens, log),
		access:          access,
		associationsSvc: NewAssociationService(associations, access, log),
		usersSvc:        NewUserService(users, associations, log),
		tokens:          tokens,
	}
}
