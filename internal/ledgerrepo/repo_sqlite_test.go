package ledgerrepo

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/lendbook/internal/domain"
	"github.com/go-petr/lendbook/pkg/dbpkg"
	"github.com/go-petr/lendbook/pkg/randompkg"
	"github.com/go-petr/lendbook/pkg/txtypepkg"
)

func setupRepo(t *testing.T) *RepoSQLite {
	t.Helper()

	testRepo := NewRepoSQLite(dbpkg.SetupTest(t))

	err := testRepo.Migrate(context.Background())
	require.NoError(t, err)

	return testRepo
}

func randomAccount(t *testing.T) domain.Account {
	t.Helper()

	amount, err := decimal.NewFromString(randompkg.Amount(1, 1_000))
	require.NoError(t, err)

	return domain.Account{
		ID:    uuid.NewString(),
		Party: randompkg.Party(),
		Transactions: []domain.Transaction{
			{
				ID:     uuid.NewString(),
				Amount: amount,
				Type:   txtypepkg.Lent,
				Date:   randompkg.Date(),
			},
		},
	}
}

func TestLoadEmpty(t *testing.T) {
	testRepo := setupRepo(t)

	accounts, err := testRepo.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, accounts)
	require.Empty(t, accounts)
}

func TestSaveThenLoad(t *testing.T) {
	testRepo := setupRepo(t)
	ctx := context.Background()

	want := []domain.Account{randomAccount(t), randomAccount(t)}

	err := testRepo.Save(ctx, want)
	require.NoError(t, err)

	got, err := testRepo.Load(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveOverwritesSnapshot(t *testing.T) {
	testRepo := setupRepo(t)
	ctx := context.Background()

	first := []domain.Account{randomAccount(t)}
	require.NoError(t, testRepo.Save(ctx, first))

	second := []domain.Account{randomAccount(t), randomAccount(t)}
	require.NoError(t, testRepo.Save(ctx, second))

	got, err := testRepo.Load(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveNil(t *testing.T) {
	testRepo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, testRepo.Save(ctx, nil))

	got, err := testRepo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}
