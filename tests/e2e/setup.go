//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"order-core/cmd/bootstrap"
	"order-core/cmd/bootstrap/components"
	"order-core/internal/domain/cart"
	"order-core/internal/domain/money"
	"order-core/internal/domain/payment"
	"order-core/internal/infra/cartstore"
	"order-core/internal/infra/db"
	"order-core/internal/infra/migrations"
	"order-core/internal/pkg/clock"
	"order-core/internal/pkg/config"
	"order-core/internal/pkg/jwt"
	"order-core/internal/usecase"
	"order-core/internal/usecase/worker"
	"order-core/tests/common/dbtest"
	"order-core/tests/common/httptest"

	"github.com/alicebob/miniredis/v2"
	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// Env is one isolated deployment: its own database, Redis and gateway.
type Env struct {
	Router  *gin.Engine
	DB      *pgxpool.Pool
	Config  config.Config
	Gateway *FakeGateway
	Redis   *miniredis.Miniredis
	Carts   *cartstore.RedisStore
	Outbox  *worker.OutboxWorker
	Sweeper *worker.Sweeper
	JWT     *jwt.Service
}

func setupE2EEnvironment(t *testing.T) *Env {
	postgresInfo := startContainers(t)

	pool, dbConfig := prepareDatabase(t, postgresInfo)

	gw := NewFakeGateway()
	t.Cleanup(gw.Close)

	mr := miniredis.RunT(t)

	cfg := createTestConfig(dbConfig, gw.URL(), mr.Addr())
	env, app := buildE2EApp(t, cfg)
	env.DB = pool
	env.Gateway = gw
	env.Redis = mr

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	env.Carts = cartstore.NewRedisStore(rdb, cfg.Redis, clock.NewRealClock(), slog.Default())

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("Failed to stop fx application", "error", err.Error())
		}
	})

	slog.Info("E2E environment ready",
		"postgres_host", postgresInfo.Host,
		"postgres_port", postgresInfo.Port.Port())

	return env
}

func startContainers(t *testing.T) ContainerInfo {
	gin.SetMode(gin.TestMode)
	startPostgreSQLContainerOnce(t)

	postgresInfo, err := getContainerHostPort(postgresTestContainer, "5432/tcp")
	require.NoError(t, err, "failed to read PostgreSQL container address")

	return postgresInfo
}

// prepareDatabase creates a database per test process and migrates it.
func prepareDatabase(t *testing.T, postgresInfo ContainerInfo) (*pgxpool.Pool, config.DBConfig) {
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, postgresInfo.Host, postgresInfo.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "admin connection failed")
	defer adminPool.Close()

	var createErr error
	for attempts := 0; attempts < 5; attempts++ {
		var waitTime time.Duration
		if attempts > 0 {
			waitTime = time.Duration(500+attempts*500) * time.Millisecond
			waitTime = min(waitTime, 3*time.Second)
			time.Sleep(waitTime)
		}
		_, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
		if createErr == nil {
			break
		}
		slog.Warn("Retrying database creation", "attempt", attempts+1, "error", createErr.Error(), "retry_wait", waitTime)
	}
	require.NoError(t, createErr, "failed to create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("Cleanup connection failed", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()

		_, err = cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)")
		if err != nil {
			slog.Warn("Failed to drop test database", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     postgresInfo.Host,
		Port:     postgresInfo.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 20,
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migrations.Up(dbConfig.BuildMigrateURL(), quiet), "migration failed")

	pool, cleanup, err := db.Connect(context.Background(), dbConfig)
	require.NoError(t, err, "database connection failed")
	t.Cleanup(cleanup)

	return pool, dbConfig
}

// buildE2EApp wires the production graph against the test config. Workers are
// not started; tests drive them one batch at a time.
func buildE2EApp(t *testing.T, cfg config.Config) (*Env, *fx.App) {
	env := &Env{Config: cfg}

	app := fx.New(
		fx.Provide(func() config.Config { return cfg }),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.DBModule,
		bootstrap.JWTModule,
		bootstrap.GatewayModule,
		bootstrap.MessagingModule,
		components.UseCaseModule,
		bootstrap.WorkerModule,
		components.HandlerModule,

		fx.Populate(&env.Router, &env.Outbox, &env.Sweeper, &env.JWT),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "failed to start fx app")
	require.NotNil(t, env.Router)

	return env, app
}

func createTestConfig(dbConfig config.DBConfig, gatewayURL, redisAddr string) config.Config {
	testConfig := config.NewTestConfig()
	testConfig.Store.Driver = config.StoreDriverPostgres
	testConfig.DB = dbConfig
	testConfig.Gateway.BaseURL = gatewayURL
	testConfig.Gateway.BreakerMaxFailures = 100
	testConfig.Redis.Addr = redisAddr
	testConfig.Pricing.TaxRateBasisPoints = 0
	testConfig.Pricing.FreeShippingThresholdMinor = 0
	testConfig.Pricing.FlatShippingMinor = 0
	testConfig.Outbox.BaseBackoff = time.Millisecond
	testConfig.Outbox.MaxBackoff = time.Millisecond
	return testConfig
}

func startGenericContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

// startPostgreSQLContainerOnce shares one container between suites of a process.
func startPostgreSQLContainerOnce(t *testing.T) {
	postgresContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_wal_size=512MB",
				"-c", "shared_buffers=256MB",
				"-c", "max_connections=200",
				"-c", "log_statement=none",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		postgresTestContainer, err = startGenericContainer(req, 180)
		require.NoError(t, err, "failed to start PostgreSQL container")
	})
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// SharedSuite gives every e2e suite a deployment plus the helpers to drive it.
type SharedSuite struct {
	suite.Suite
	*Env
}

func (s *SharedSuite) SetupSuite() {
	s.Env = setupE2EEnvironment(s.T())
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database state")
	s.Redis.FlushAll()
	s.Gateway.Reset()
}

// PutCart stores a cart for owner; unitPrice is in minor units.
func (s *SharedSuite) PutCart(owner cart.Owner, productID uuid.UUID, qty int, unitPrice int64) {
	err := s.Carts.Put(context.Background(), owner, []cart.Line{{
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: money.MustNew(unitPrice),
	}})
	require.NoError(s.T(), err)
}

func (s *SharedSuite) Token(userID uuid.UUID, role usecase.Role) string {
	token, err := s.JWT.GenerateToken(userID.String(), string(role), time.Hour)
	require.NoError(s.T(), err)
	return token
}

// Checkout posts the standard checkout body for a session owner.
func (s *SharedSuite) Checkout(sessionID, key string) *nethttptest.ResponseRecorder {
	body := map[string]any{
		"currency": "USD",
		"shipping_address": map[string]any{
			"name": "Ada Lovelace", "line1": "1 Main St", "city": "Springfield",
			"postal_code": "12345", "country": "US",
		},
	}
	return httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/checkout", body, map[string]string{
		"X-Session-ID":    sessionID,
		"Idempotency-Key": key,
	})
}

// DeliverWebhook signs and posts a gateway event for orderID.
func (s *SharedSuite) DeliverWebhook(eventID string, typ payment.EventType, orderID uuid.UUID) *nethttptest.ResponseRecorder {
	body := []byte(fmt.Sprintf(
		`{"id":%q,"type":%q,"created":%d,"data":{"object":{"id":"pi_%s","metadata":{"order_id":%q}}}}`,
		eventID, typ, time.Now().Unix(), orderID, orderID))
	sig := payment.Sign(s.Config.Gateway.WebhookSecret, body, time.Now())
	return httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/webhooks/gateway", body,
		map[string]string{payment.SignatureHeader: sig})
}

// DrainOutbox runs outbox batches until two passes a backoff apart find nothing due.
func (s *SharedSuite) DrainOutbox() {
	idle := 0
	for i := 0; i < 50; i++ {
		n, err := s.Outbox.ProcessBatch(context.Background())
		require.NoError(s.T(), err)
		if n > 0 {
			idle = 0
			continue
		}
		if idle++; idle == 2 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	s.T().Fatal("outbox did not drain")
}
