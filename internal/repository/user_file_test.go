package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brm5/taccom/internal/model"
)

func newTestRepo(t *testing.T) *UserFileRepository {
	t.Helper()

	return NewFileUserRepo(filepath.Join(t.TempDir(), "users.yml"))
}

func TestRegisterAndAuth(t *testing.T) {
	r := newTestRepo(t)

	u, err := r.Register("ghost", "pa$$word", "John Doe", model.GRPL)
	require.NoError(t, err)
	require.NotEmpty(t, u.UID)
	require.Equal(t, model.GRPL, u.Platoon)
	require.NotEqual(t, "pa$$word", u.Password)

	require.True(t, r.CheckAuth("ghost", "pa$$word"))
	require.False(t, r.CheckAuth("ghost", "wrong"))
	require.False(t, r.CheckAuth("nobody", "pa$$word"))

	require.NotNil(t, r.Get("ghost"))
	require.Equal(t, "ghost", r.GetByUID(u.UID).GetLogin())
}

func TestRegisterConflict(t *testing.T) {
	r := newTestRepo(t)

	u1, err := r.Register("ghost", "first", "John Doe", model.GRPL)
	require.NoError(t, err)

	_, err = r.Register("ghost", "second", "Jane Doe", model.BLPL)
	require.True(t, errors.Is(err, model.ErrConflict))

	// stored account untouched
	got := r.Get("ghost")
	require.Equal(t, u1.UID, got.UID)
	require.Equal(t, model.GRPL, got.Platoon)
	require.True(t, r.CheckAuth("ghost", "first"))
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRepo(t)

	for _, tc := range []struct {
		name     string
		login    string
		password string
		userName string
		platoon  model.Platoon
	}{
		{"empty login", "", "p", "n", model.GRPL},
		{"empty password", "l", "", "n", model.GRPL},
		{"empty name", "l", "p", "", model.GRPL},
		{"general platoon", "l", "p", "n", model.GENERAL},
		{"lieutenant platoon", "l", "p", "n", model.LTPR},
		{"unknown platoon", "l", "p", "n", model.Platoon("XXPL")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Register(tc.login, tc.password, tc.userName, tc.platoon)
			require.True(t, errors.Is(err, model.ErrValidation))
		})
	}
}

func TestRegisterPersists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "users.yml")

	r1 := NewFileUserRepo(file)
	_, err := r1.Register("ghost", "pa$$word", "John Doe", model.BLPL)
	require.NoError(t, err)

	// a fresh repository over the same file sees the account
	r2 := NewFileUserRepo(file)
	require.True(t, r2.CheckAuth("ghost", "pa$$word"))
}

func TestDisabledUser(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "users.yml")

	r1 := NewFileUserRepo(file)
	_, err := r1.Register("ghost", "pa$$word", "John Doe", model.BLPL)
	require.NoError(t, err)

	u := r1.Get("ghost")
	u.Disabled = true
	require.NoError(t, r1.saveUsersFile())

	r2 := NewFileUserRepo(file)
	require.False(t, r2.CheckAuth("ghost", "pa$$word"))
}

func TestLoadMissingFileCreatesIt(t *testing.T) {
	file := filepath.Join(t.TempDir(), "users.yml")

	_ = NewFileUserRepo(file)

	_, err := os.Stat(file)
	require.NoError(t, err)
}
