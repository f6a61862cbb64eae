package services

import (
	"context"
	"fmt"

	"outlay/internal/core"
	"outlay/internal/store"
)

// resolveOwner turns an acting identity (email) into a user record. A miss
// surfaces as a user NotFoundError, distinct from the entity lookup that
// follows it.
func resolveOwner(ctx context.Context, users store.UserStore, email string) (core.User, error) {
	user, err := users.FindUserByEmail(ctx, email)
	if err != nil {
		return core.User{}, fmt.Errorf("resolve owner: %w", err)
	}
	return user, nil
}

// checkOwnership confirms an already-fetched entity belongs to the acting
// user. Single-record reads and every mutation go through this two-step
// check; bulk email-scoped fetches do not, because the store already scopes
// them by owner email.
func checkOwnership(kind string, user core.User, ownerID string) error {
	if ownerID != user.ID {
		return &core.OwnershipError{Kind: kind}
	}
	return nil
}

// categoryNames builds the category ID to display name mapping used to
// resolve expense category references for one user.
func categoryNames(ctx context.Context, categories store.CategoryStore, email string) (map[string]string, error) {
	list, err := categories.FindCategoriesByOwner(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list categories for %s: %w", email, err)
	}
	names := make(map[string]string, len(list))
	for _, c := range list {
		names[c.ID] = c.Name
	}
	return names, nil
}
