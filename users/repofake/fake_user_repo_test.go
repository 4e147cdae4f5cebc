package fakeuserrepo_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-storefront-api/users"
	fakeuserrepo "github.com/jrsteele09/go-storefront-api/users/repofake"
	"github.com/stretchr/testify/require"
)

func TestFakeUserRepo(t *testing.T) {
	ctx := context.Background()
	repo := fakeuserrepo.NewFakeUserRepo()

	ana := &users.User{Username: "ana", Email: "ana@x.com", Role: users.RoleBuyer}
	require.NoError(t, repo.Create(ctx, ana))
	require.NotEmpty(t, ana.ID)

	require.ErrorIs(t, repo.Create(ctx, &users.User{Username: "other", Email: "ana@x.com"}), users.DuplicateUserErr)
	require.ErrorIs(t, repo.Create(ctx, &users.User{Username: "ana", Email: "other@x.com"}), users.DuplicateUserErr)

	bob := &users.User{Username: "bob", Email: "bob@x.com", Role: users.RoleSeller}
	require.NoError(t, repo.Create(ctx, bob))

	got, err := repo.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.Equal(t, ana.ID, got.ID)

	got.Email = "bob@x.com"
	require.ErrorIs(t, repo.Update(ctx, got), users.DuplicateUserErr)

	got.Email = "ana2@x.com"
	require.NoError(t, repo.Update(ctx, got))
	_, err = repo.GetByEmail(ctx, "ana@x.com")
	require.ErrorIs(t, err, users.UserNotFoundErr)

	byID, err := repo.GetByID(ctx, ana.ID)
	require.NoError(t, err)
	require.Equal(t, "ana2@x.com", byID.Email)

	_, err = repo.GetByID(ctx, "nope")
	require.ErrorIs(t, err, users.InvalidIDErr)

	require.NoError(t, repo.Delete(ctx, ana.ID))
	_, err = repo.GetByID(ctx, ana.ID)
	require.ErrorIs(t, err, users.UserNotFoundErr)
}
