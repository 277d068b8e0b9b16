package users

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
	"github.com/ledgerbook-dev/ledgerbook/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st, 6, zerolog.Nop()), st
}

func bootstrapRoot(t *testing.T, svc *Service) model.User {
	t.Helper()
	admin, err := svc.BootstrapAdmin(context.Background(), CreateParams{
		Username:  "root",
		Password:  "secret1",
		FirstName: "Root",
		LastName:  "Admin",
		Document:  "20452423",
	})
	require.NoError(t, err)
	return admin
}

func TestAuthenticate_SuccessLogsOneLogin(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	bootstrapRoot(t, svc)

	user, err := svc.Authenticate(ctx, "root", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "root", user.Username)
	assert.True(t, user.IsAdmin())

	activities, err := st.RecentActivities(ctx, 10)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, model.ActivityLogin, activities[0].Kind)
}

func TestLogout_RecordsActivity(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	bootstrapRoot(t, svc)

	user, err := svc.Authenticate(ctx, "root", "secret1")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, user))

	activities, err := st.RecentActivities(ctx, 10)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, model.ActivityLogout, activities[0].Kind)
	assert.Equal(t, model.ActivityLogin, activities[1].Kind)
}

func TestAuthenticate_WrongPasswordLogsNothing(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	bootstrapRoot(t, svc)

	_, err := svc.Authenticate(ctx, "root", "wrong")
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Contains(t, err.Error(), "wrong password")

	n, err := st.CountActivities(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAuthenticate_UnknownAndInactive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	admin := bootstrapRoot(t, svc)

	_, err := svc.Authenticate(ctx, "nobody", "whatever")
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Contains(t, err.Error(), "not found")

	_, err = svc.Create(ctx, CreateParams{
		Username: "jane", Password: "secret1",
		FirstName: "Jane", LastName: "Doe",
		Document: "111111", Level: model.LevelWorker,
	}, admin)
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, "jane", admin))

	_, err = svc.Authenticate(ctx, "jane", "secret1")
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Contains(t, err.Error(), "inactive")
}

func TestCreate_Validations(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	admin := bootstrapRoot(t, svc)

	tests := []struct {
		name   string
		params CreateParams
	}{
		{"short password", CreateParams{Username: "jane", Password: "abc", FirstName: "Jane", LastName: "Doe", Document: "111111", Level: model.LevelWorker}},
		{"bad username", CreateParams{Username: "j d", Password: "secret1", FirstName: "Jane", LastName: "Doe", Document: "111111", Level: model.LevelWorker}},
		{"bad document", CreateParams{Username: "jane", Password: "secret1", FirstName: "Jane", LastName: "Doe", Document: "abc", Level: model.LevelWorker}},
		{"bad level", CreateParams{Username: "jane", Password: "secret1", FirstName: "Jane", LastName: "Doe", Document: "111111", Level: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.params, admin)
			assert.Error(t, err)
		})
	}
}

func TestCreate_Duplicates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	admin := bootstrapRoot(t, svc)

	params := CreateParams{
		Username: "jane", Password: "secret1",
		FirstName: "Jane", LastName: "Doe",
		Document: "111111", Level: model.LevelWorker,
	}
	_, err := svc.Create(ctx, params, admin)
	require.NoError(t, err)

	_, err = svc.Create(ctx, params, admin)
	assert.ErrorIs(t, err, ErrDuplicateUser)

	params.Username = "jane2"
	_, err = svc.Create(ctx, params, admin)
	assert.ErrorIs(t, err, ErrDuplicateDocument)
}

func TestCreate_RequiresAdministrator(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	admin := bootstrapRoot(t, svc)

	worker, err := svc.Create(ctx, CreateParams{
		Username: "jane", Password: "secret1",
		FirstName: "Jane", LastName: "Doe",
		Document: "111111", Level: model.LevelWorker,
	}, admin)
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateParams{
		Username: "john", Password: "secret1",
		FirstName: "John", LastName: "Doe",
		Document: "222222", Level: model.LevelWorker,
	}, worker)
	assert.ErrorIs(t, err, ErrNotAdministrator)
}

func TestBootstrapAdmin_Idempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := bootstrapRoot(t, svc)
	again, err := svc.BootstrapAdmin(ctx, CreateParams{
		Username: "root", Password: "different",
		FirstName: "Root", LastName: "Admin", Document: "20452423",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	bootstrapRoot(t, svc)

	require.Error(t, svc.ChangePassword(ctx, "root", "wrong", "newsecret"))
	require.Error(t, svc.ChangePassword(ctx, "root", "secret1", "tiny"))

	require.NoError(t, svc.ChangePassword(ctx, "root", "secret1", "newsecret"))

	_, err := svc.Authenticate(ctx, "root", "secret1")
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	_, err = svc.Authenticate(ctx, "root", "newsecret")
	require.NoError(t, err)
}
