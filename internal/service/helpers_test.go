package service_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/powerdealer-api/internal/config"
	"github.com/phrazzld/powerdealer-api/internal/platform/sqlite"
	"github.com/phrazzld/powerdealer-api/internal/service"
	"github.com/phrazzld/powerdealer-api/internal/service/auth"
	"github.com/phrazzld/powerdealer-api/internal/testdb"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testAuthConfig = config.AuthConfig{
	JWTSecret:                   "thisisasecretkeythatis32charslong!!",
	TokenLifetimeMinutes:        5,
	RefreshTokenLifetimeMinutes: 60,
	BcryptCost:                  bcrypt.MinCost,
}

type fixture struct {
	store      *sqlite.AccountStore
	jwt        auth.JWTService
	accounts   *service.AccountServiceImpl
	businesses *service.BusinessServiceImpl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st := sqlite.NewAccountStore(testdb.OpenSQLite(t), logger)
	jwtService, err := auth.NewJWTService(testAuthConfig)
	require.NoError(t, err)

	accounts, err := service.NewAccountService(st, auth.NewBcryptHasher(testAuthConfig.BcryptCost), jwtService, logger)
	require.NoError(t, err)
	businesses, err := service.NewBusinessService(st, logger)
	require.NoError(t, err)

	return &fixture{store: st, jwt: jwtService, accounts: accounts, businesses: businesses}
}

func aliceSignup() service.SignupInput {
	return service.SignupInput{
		Username:      "alice",
		Email:         "a@x.com",
		Password:      "secret1",
		BusinessName:  "Alice Co",
		BusinessEmail: "b@x.com",
	}
}
