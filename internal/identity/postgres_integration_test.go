//go:build integration

package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"shulchan/internal/identity"
	"shulchan/pkg/sentinel"
	"shulchan/pkg/testutil/containers"
)

type PostgresProviderSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	provider *identity.PostgresProvider
}

func TestPostgresProviderSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresProviderSuite))
}

func (s *PostgresProviderSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.provider = identity.NewPostgresProvider(s.postgres.DB)
}

func (s *PostgresProviderSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "credentials"))
}

func (s *PostgresProviderSuite) TestCreateAuthenticateDelete() {
	ctx := context.Background()

	cred, err := s.provider.CreateUser(ctx, "Someone@Example.com", "123456")
	s.Require().NoError(err)
	s.NotEmpty(cred.ID)
	s.Equal("someone@example.com", cred.Email)

	_, err = s.provider.CreateUser(ctx, "someone@example.com", "other")
	s.ErrorIs(err, identity.ErrEmailTaken)

	got, err := s.provider.Authenticate(ctx, "someone@example.com", "123456")
	s.Require().NoError(err)
	s.Equal(cred.ID, got.ID)

	_, err = s.provider.Authenticate(ctx, "someone@example.com", "wrong")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.provider.DeleteUser(ctx, cred.ID))

	_, err = s.provider.Authenticate(ctx, "someone@example.com", "123456")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.provider.DeleteUser(ctx, cred.ID), sentinel.ErrNotFound)
}
