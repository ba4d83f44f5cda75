package service

import (
	"context"
	"testing"

	"hoa-service/internal/apperr"
	"hoa-service/pkg/hash"
)

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := registerManager(t, env, "m@x.is")

	if err := env.usersSvc.ChangePassword(ctx, user.ID, "Wr0ng!Pw!", "N3w!Passw"); apperr.KindOf(err) != apperr.KindInvalidCredentials {
		t.Fatalf("expected InvalidCredentials for wrong current password, got %v", err)
	}
	if err := env.usersSvc.ChangePassword(ctx, user.ID, "Str0ng!Pw", "weak"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected Validation for weak new password, got %v", err)
	}
	if err := env.usersSvc.ChangePassword(ctx, user.ID, "Str0ng!Pw", "N3w!Passw"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	stored := env.store.users[user.ID]
	if !hash.Verify("N3w!Passw", stored.Password) {
		t.Fatalf("expected new password to verify")
	}
	if hash.Verify("Str0ng!Pw", stored.Password) {
		t.Fatalf("expected old password to stop verifying")
	}
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := registerMember(t, env, "p@x.is", "0101701234")

	updated, err := env.usersSvc.UpdateProfile(ctx, user.ID, UpdateProfileInput{
		FirstName: strptr("Páll"),
		LastName:  strptr("Jónsson"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FirstName != "Páll" || updated.LastName != "Jónsson" {
		t.Fatalf("unexpected names: %s %s", updated.FirstName, updated.LastName)
	}

	if _, err := env.usersSvc.UpdateProfile(ctx, user.ID, UpdateProfileInput{
		FirstName: strptr("P4ll"),
	}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected Validation for bad name, got %v", err)
	}
}

func TestUpdateProfileNationalIDCollision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registerMember(t, env, "p@x.is", "0101701234")
	other := registerMember(t, env, "q@x.is", "0202800000")

	_, err := env.usersSvc.UpdateProfile(ctx, other.ID, UpdateProfileInput{
		NationalID: strptr("010170-1234"),
	})
	if apperr.KindOf(err) != apperr.KindAlreadyExists {
		t.Fatalf("expected AlreadyExists, got %v", err)
	}

	// Re-submitting one's own national id is not a collision.
	if _, err := env.usersSvc.UpdateProfile(ctx, other.ID, UpdateProfileInput{
		NationalID: strptr("0202800000"),
	}); err != nil {
		t.Fatalf("expected own id to be accepted, got %v", err)
	}
}

func TestDeleteBlockedWhileManagingAssociations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := registerManager(t, env, "m@x.is")
	association := createAssociation(t, env, manager.ID, "Test", "701111-2222")

	if err := env.usersSvc.Delete(ctx, manager.ID); apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected Conflict while managing an association, got %v", err)
	}

	if err := env.associationsSvc.Delete(ctx, association.ID, manager.ID); err != nil {
		t.Fatalf("delete association: %v", err)
	}
	if err := env.usersSvc.Delete(ctx, manager.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
}

func TestDeleteUserDropsMemberships(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := registerManager(t, env, "m@x.is")
	member := registerMember(t, env, "p@x.is", "0101701234")
	association := createAssociation(t, env, manager.ID, "Test", "701111-2222")

	if _, err := env.access.AddMemberByNationalID(ctx, association.ID, "0101701234", manager.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := env.usersSvc.Delete(ctx, member.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	memberships, err := env.access.ListMembers(ctx, association.ID, manager.ID, manager.Role)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(memberships) != 0 {
		t.Fatalf("expected roster emptied with the user, got %d rows", len(memberships))
	}
}

func TestAssociationListForUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := registerManager(t, env, "m@x.is")
	member := registerMember(t, env, "p@x.is", "0101701234")

	managed := createAssociation(t, env, manager.ID, "Managed", "701111-2222")
	joined := createAssociation(t, env, manager.ID, "Joined", "701111-3333")
	createAssociation(t, env, manager.ID, "Unrelated", "701111-4444")

	if _, err := env.access.AddMemberByNationalID(ctx, joined.ID, "0101701234", manager.ID); err != nil {
		t.Fatalf("add: %v", err)
	}

	forMember, err := env.associationsSvc.ListForUser(ctx, member.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(forMember) != 1 || forMember[0].ID != joined.ID {
		t.Fatalf("expected only the joined association, got %+v", forMember)
	}

	forManager, err := env.associationsSvc.ListForUser(ctx, manager.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(forManager) != 3 {
		t.Fatalf("expected all managed associations, got %d", len(forManager))
	}
	_ = managed
}

func TestAssociationGetHonorsAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := registerManager(t, env, "m@x.is")
	stranger := registerMember(t, env, "s@x.is", "0202800000")
	association := createAssociation(t, env, manager.ID, "Test", "701111-2222")

	if _, err := env.associationsSvc.Get(ctx, association.ID, manager.ID, manager.Role); err != nil {
		t.Fatalf("manager get: %v", err)
	}
	if _, err := env.associationsSvc.Get(ctx, association.ID, stranger.ID, stranger.Role); apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("expected Forbidden for stranger, got %v", err)
	}
	if _, err := env.associationsSvc.Get(ctx, 999, manager.ID, manager.Role); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
