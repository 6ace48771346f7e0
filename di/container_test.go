package di_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restkit/restkit/di"
)

type mockDatabase struct {
	dsn string
}

type mockUserService struct {
	db *mockDatabase
}

func TestRegisterAndResolve(t *testing.T) {
	t.Parallel()

	c := di.New()
	di.Register(c, &mockDatabase{dsn: "postgres://localhost"})

	db, ok := di.Resolve[*mockDatabase](c)
	require.True(t, ok)
	assert.Equal(t, "postgres://localhost", db.dsn)
}

func TestProvide(t *testing.T) {
	t.Parallel()

	c := di.New()
	di.Provide(c, func() *mockDatabase {
		return &mockDatabase{dsn: "sqlite::memory"}
	})

	db, ok := di.Resolve[*mockDatabase](c)
	require.True(t, ok)
	assert.Equal(t, "sqlite::memory", db.dsn)
}

func TestResolveMissing(t *testing.T) {
	t.Parallel()

	c := di.New()

	db, ok := di.Resolve[*mockDatabase](c)
	assert.False(t, ok)
	assert.Nil(t, db)
}

func TestMustResolvePanics(t *testing.T) {
	t.Parallel()

	c := di.New()

	assert.PanicsWithValue(t, "di: service *di_test.mockDatabase not registered", func() {
		di.MustResolve[*mockDatabase](c)
	})
}

func TestRegisterReplaces(t *testing.T) {
	t.Parallel()

	c := di.New()
	di.Register(c, &mockDatabase{dsn: "first"})
	di.Register(c, &mockDatabase{dsn: "second"})

	db := di.MustResolve[*mockDatabase](c)
	assert.Equal(t, "second", db.dsn)
	assert.Equal(t, 1, c.Len())
}

func TestDependencyChain(t *testing.T) {
	t.Parallel()

	c := di.New()

	di.Register(c, &mockDatabase{dsn: "postgres://localhost"})
	di.Register(c, &mockUserService{db: di.MustResolve[*mockDatabase](c)})

	svc := di.MustResolve[*mockUserService](c)
	assert.Equal(t, "postgres://localhost", svc.db.dsn)
}

func TestInterfaceService(t *testing.T) {
	t.Parallel()

	type store interface {
		DSN() string
	}

	c := di.New()
	di.Register[store](c, dsnStore{})

	s, ok := di.Resolve[store](c)
	require.True(t, ok)
	assert.Equal(t, "mem://", s.DSN())

	// The concrete type is a different key.
	assert.False(t, di.Contains[dsnStore](c))
}

type dsnStore struct{}

func (dsnStore) DSN() string { return "mem://" }

func TestContains(t *testing.T) {
	t.Parallel()

	c := di.New()
	assert.False(t, di.Contains[*mockDatabase](c))

	di.Register(c, &mockDatabase{dsn: "test"})
	assert.True(t, di.Contains[*mockDatabase](c))
}

func TestLenAndClear(t *testing.T) {
	t.Parallel()

	c := di.New()
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.IsEmpty())

	di.Register(c, &mockDatabase{dsn: "test"})
	di.Register(c, &mockUserService{})
	assert.Equal(t, 2, c.Len())
	assert.False(t, c.IsEmpty())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.IsEmpty())
}
