package repository_test

import (
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// sessionStoreSuite holds the behaviour every port.SessionStore backend must show.
// Backends embed it and set repo plus reset.
type sessionStoreSuite struct {
	suite.Suite

	repo  port.SessionStore
	reset func()
}

func (suite *sessionStoreSuite) TestLoad() {
	defer suite.reset()

	tests := []struct {
		name  string
		saved *domain.User
	}{
		{
			name:  "load empty store: nil user",
			saved: nil,
		},
		{
			name: "load saved user: ok",
			saved: func() *domain.User {
				u := randomUser()
				return &u
			}(),
		},
		{
			name:  "load user with empty fields: ok",
			saved: &domain.User{Name: "Ana"},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			defer suite.reset()

			t := suite.T()
			ctx := t.Context()

			if tt.saved != nil {
				require.NoError(t, suite.repo.Save(ctx, *tt.saved))
			}

			user, err := suite.repo.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.saved, user)
		})
	}
}

func (suite *sessionStoreSuite) TestSaveOverwrites() {
	defer suite.reset()

	t := suite.T()
	ctx := t.Context()

	first := randomUser()
	second := randomUser()

	require.NoError(t, suite.repo.Save(ctx, first))
	require.NoError(t, suite.repo.Save(ctx, second))

	user, err := suite.repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, second, *user)
}

func (suite *sessionStoreSuite) TestDelete() {
	defer suite.reset()

	tests := []struct {
		name  string
		saved bool
	}{
		{
			name:  "delete saved user: ok",
			saved: true,
		},
		{
			name:  "delete from empty store: ok",
			saved: false,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			defer suite.reset()

			t := suite.T()
			ctx := t.Context()

			if tt.saved {
				require.NoError(t, suite.repo.Save(ctx, randomUser()))
			}

			require.NoError(t, suite.repo.Delete(ctx))

			user, err := suite.repo.Load(ctx)
			require.NoError(t, err)
			assert.Nil(t, user)
		})
	}
}
