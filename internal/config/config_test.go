package config

import (
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

type testCLI struct {
	Log    Log    `embed:""`
	Store  Store  `embed:""`
	Server Server `embed:""`
}

func parse(t *testing.T, args ...string) testCLI {
	t.Helper()
	var cli testCLI
	parser, err := kong.New(&cli, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return cli
}

func TestDefaults(t *testing.T) {
	cli := parse(t)

	assert.Equal(t, "info", cli.Log.Level)
	assert.Equal(t, BackendSQLite, cli.Store.Backend)
	assert.Equal(t, "orderCounts", cli.Store.Record)
	assert.True(t, cli.Store.RunMigrations)
	assert.Equal(t, "8080", cli.Server.Port)
	assert.Equal(t, []string{"*"}, cli.Server.CORSAllowOrigins)
	assert.Equal(t, 10*time.Second, cli.Server.SubmitTimeout)
	assert.False(t, cli.Server.AdminEnabled)
	assert.Equal(t, order.PaymentCash, cli.Server.DefaultPaymentMethod())
	require.NoError(t, cli.Store.Validate())
	require.NoError(t, cli.Server.Validate())
}

func TestEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("COUNTER_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.local,http://b.local")
	t.Setenv("SUBMIT_TIMEOUT", "3s")
	t.Setenv("ADMIN_ENABLED", "true")
	t.Setenv("DEFAULT_PAYMENT_METHOD", "Venmo")

	cli := parse(t)

	assert.Equal(t, "9090", cli.Server.Port)
	assert.Equal(t, BackendRedis, cli.Store.Backend)
	assert.Equal(t, "redis:6379", cli.Store.RedisAddr)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cli.Server.CORSAllowOrigins)
	assert.Equal(t, 3*time.Second, cli.Server.SubmitTimeout)
	assert.True(t, cli.Server.AdminEnabled)
	assert.Equal(t, order.PaymentVenmo, cli.Server.DefaultPaymentMethod())
}

func TestFlagsOverride(t *testing.T) {
	cli := parse(t, "--counter-backend=memory", "--no-run-migrations", "--admin")

	assert.Equal(t, BackendMemory, cli.Store.Backend)
	assert.False(t, cli.Store.RunMigrations)
	assert.True(t, cli.Server.AdminEnabled)
}

func TestStoreValidate(t *testing.T) {
	tests := map[string]struct {
		store   Store
		wantErr bool
	}{
		"sqlite":               {store: Store{Backend: BackendSQLite, SQLitePath: "x.db", Record: "r"}},
		"memory":               {store: Store{Backend: BackendMemory, Record: "r"}},
		"postgres without dsn": {store: Store{Backend: BackendPostgres, Record: "r"}, wantErr: true},
		"postgres":             {store: Store{Backend: BackendPostgres, DatabaseDSN: "postgres://x", Record: "r"}},
		"redis without addr":   {store: Store{Backend: BackendRedis, Record: "r"}, wantErr: true},
		"unknown backend":      {store: Store{Backend: "etcd", Record: "r"}, wantErr: true},
		"empty record":         {store: Store{Backend: BackendMemory}, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.store.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestServerValidate(t *testing.T) {
	ok := Server{Port: "8080", SubmitTimeout: time.Second, PaymentMethod: "Card"}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.SubmitTimeout = 0
	require.Error(t, bad.Validate())

	bad = ok
	bad.PaymentMethod = "IOU"
	require.Error(t, bad.Validate())
}
