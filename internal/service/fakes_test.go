package service

import (
	"context"
	"sync"

	"hoa-service/internal/model"
	"hoa-service/internal/repository"
)

// fakeStore is an in-memory stand-in for the relational store. It honors the
// repository sentinels and the same uniqueness constraints the database
// enforces.
type fakeStore struct {
	mu           sync.Mutex
	nextID       uint
	users        map[uint]*model.User
	associations map[uint]*model.Association
	memberships  map[uint]*model.Membership
	// err, when set, makes every call fail to exercise deny-on-error paths.
	err error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[uint]*model.User),
		associations: make(map[uint]*model.Association),
		memberships:  make(map[uint]*model.Membership),
	}
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

type fakeUsers struct{ s *fakeStore }

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	user, ok := f.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	for _, user := range f.s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) FindByNationalID(_ context.Context, nationalID string) (*model.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	for _, user := range f.s.users {
		if user.NationalID != nil && *user.NationalID == nationalID {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, user *model.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return f.s.err
	}
	for _, existing := range f.s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
		if existing.NationalID != nil && user.NationalID != nil && *existing.NationalID == *user.NationalID {
			return repository.ErrDuplicate
		}
	}
	user.ID = f.s.id()
	f.s.users[user.ID] = user
	return nil
}

func (f *fakeUsers) Update(_ context.Context, user *model.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return f.s.err
	}
	if _, ok := f.s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	f.s.users[user.ID] = user
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return f.s.err
	}
	if _, ok := f.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.users, id)
	for membershipID, membership := range f.s.memberships {
		if membership.UserID == id {
			delete(f.s.memberships, membershipID)
		}
	}
	return nil
}

type fakeAssociations struct{ s *fakeStore }

func (f *fakeAssociations) FindByID(_ context.Context, id uint) (*model.Association, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	association, ok := f.s.associations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return association, nil
}

func (f *fakeAssociations) FindByIDWithMember(_ context.Context, id, userID uint) (*model.Association, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	association, ok := f.s.associations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *association
	clone.Memberships = nil
	for _, membership := range f.s.memberships {
		if membership.AssociationID == id && membership.UserID == userID {
			clone.Memberships = append(clone.Memberships, *membership)
		}
	}
	return &clone, nil
}

func (f *fakeAssociations) FindByRegistrationNum(_ context.Context, registrationNum string) (*model.Association, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	for _, association := range f.s.associations {
		if association.RegistrationNum == registrationNum {
			return association, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAssociations) ListForUser(_ context.Context, userID uint) ([]model.Association, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	seen := make(map[uint]bool)
	var result []model.Association
	for _, association := range f.s.associations {
		if association.ManagerID == userID {
			seen[association.ID] = true
			result = append(result, *association)
		}
	}
	for _, membership := range f.s.memberships {
		if membership.UserID == userID && !seen[membership.AssociationID] {
			if association, ok := f.s.associations[membership.AssociationID]; ok {
				seen[association.ID] = true
				result = append(result, *association)
			}
		}
	}
	return result, nil
}

func (f *fakeAssociations) CountByManager(_ context.Context, managerID uint) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return 0, f.s.err
	}
	var count int64
	for _, association := range f.s.associations {
		if association.ManagerID == managerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeAssociations) Create(_ context.Context, association *model.Association) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return f.s.err
	}
	for _, existing := range f.s.associations {
		if existing.RegistrationNum == association.RegistrationNum {
			return repository.ErrDuplicate
		}
	}
	association.ID = f.s.id()
	f.s.associations[association.ID] = association
	return nil
}

func (f *fakeAssociations) Update(_ context.Context, association *model.Association) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return f.s.err
	}
	if _, ok := f.s.associations[association.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range f.s.associations {
		if existing.ID != association.ID && existing.RegistrationNum == association.RegistrationNum {
			return repository.ErrDuplicate
		}
	}
	f.s.associations[association.ID] = association
	return nil
}

func (f *fakeAssociations) Delete(_ context.Context, id uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return f.s.err
	}
	if _, ok := f.s.associations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.associations, id)
	for membershipID, membership := range f.s.memberships {
		if membership.AssociationID == id {
			delete(f.s.memberships, membershipID)
		}
	}
	return nil
}

type fakeMemberships struct{ s *fakeStore }

func (f *fakeMemberships) Find(_ context.Context, associationID, userID uint) (*model.Membership, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	for _, membership := range f.s.memberships {
		if membership.AssociationID == associationID && membership.UserID == userID {
			return membership, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMemberships) ListByAssociation(_ context.Context, associationID uint) ([]model.Membership, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	var result []model.Membership
	for _, membership := range f.s.memberships {
		if membership.AssociationID == associationID {
			result = append(result, *membership)
		}
	}
	return result, nil
}

func (f *fakeMemberships) Create(_ context.Context, membership *model.Membership) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return f.s.err
	}
	for _, existing := range f.s.memberships {
		if existing.AssociationID == membership.AssociationID && existing.UserID == membership.UserID {
			return repository.ErrDuplicate
		}
	}
	membership.ID = f.s.id()
	f.s.memberships[membership.ID] = membership
	return nil
}

func (f *fakeMemberships) Delete(_ context.Context, associationID, userID uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return f.s.err
	}
	for membershipID, membership := range f.s.memberships {
		if membership.AssociationID == associationID && membership.UserID == userID {
			delete(f.s.memberships, membershipID)
			return nil
		}
	}
	return repository.ErrNotFound
}

var (
	_ repository.UserRepository        = (*fakeUsers)(nil)
	_ repository.AssociationRepository = (*fakeAssociations)(nil)
	_ repository.MembershipRepository  = (*fakeMemberships)(nil)
)
