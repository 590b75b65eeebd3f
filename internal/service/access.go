package service

import (
	"context"
	"errors"

	"artistcollab/internal/domain"
	"artistcollab/internal/repository"
)

var (
	ErrNoAccess = errors.New("no access")
	ErrNotOwner = errors.New("only the project owner may do this")
)

// RoleStore is the membership lookup the access rules need.
type RoleStore interface {
	Get(ctx context.Context, projectID, profileID string) (*domain.Role, error)
}

// AccessService holds the row-visibility rules. A project is readable by
// its owner, its members, and anyone when public; tasks and messages are
// writable by owner or member only; membership rows are inserted by the
// owner only. Handlers treat this as the authoritative policy layer.
type AccessService struct {
	roles RoleStore
}

func NewAccessService(roles RoleStore) *AccessService {
	return &AccessService{roles: roles}
}

func (s *AccessService) isMember(ctx context.Context, projectID, profileID string) bool {
	if profileID == "" {
		return false
	}
	role, err := s.roles.Get(ctx, projectID, profileID)
	return err == nil && role != nil
}

// CanView reports whether viewerID (empty = anonymous) may read the project
// and its tasks, messages and member list.
func (s *AccessService) CanView(ctx context.Context, p *domain.Project, viewerID string) bool {
	if p == nil {
		return false
	}
	if p.IsPublic {
		return true
	}
	if viewerID == "" {
		return false
	}
	if p.OwnerID == viewerID {
		return true
	}
	return s.isMember(ctx, p.ID, viewerID)
}

// CanWrite reports whether actorID may create or mutate tasks and messages.
// Anonymous actors never can.
func (s *AccessService) CanWrite(ctx context.Context, p *domain.Project, actorID string) bool {
	if p == nil || actorID == "" {
		return false
	}
	if p.OwnerID == actorID {
		return true
	}
	return s.isMember(ctx, p.ID, actorID)
}

// CanInvite enforces the owner-only membership insert.
func (s *AccessService) CanInvite(p *domain.Project, actorID string) error {
	if p == nil || actorID == "" || p.OwnerID != actorID {
		return ErrNotOwner
	}
	return nil
}

var _ RoleStore = (*repository.RoleRepository)(nil)
