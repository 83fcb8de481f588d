// Helpers for running integration tests against real containers.
// Used by the integration tests and by the standalone cmd/testcontainers
// launcher. Expects environment variables to be loaded from .env files.

package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/sandwichproject/opsdb/data"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestContainers bundles the dev/test dependency containers.
type TestContainers struct {
	Network             *testcontainers.DockerNetwork
	DBContainer         testcontainers.Container
	AuthorizerContainer testcontainers.Container

	// Host-mapped endpoints for test processes
	DBHost    string
	DBPort    string
	AuthzURL  string
	DBName    string
	DBUserVar string
}

// Terminate tears down everything that was started.
func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.AuthorizerContainer != nil {
		if err := tc.AuthorizerContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Authorizer: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate MariaDB: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// CreateAllTestContainers starts the MariaDB and Authorizer containers,
// initializes the schema, and returns the mapped endpoints. Pass a nil
// *testing.T when running outside the test harness.
func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	tc := &TestContainers{}

	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	tc.Network = nw
	networkName := nw.Name

	// Database container
	dbNetworkName := envOr("DB_HOST", "mariadb")
	tcpDbPort, err := nat.NewPort("tcp", envOr("DB_PORT", "3306"))
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to create DB port")
	}
	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("DB_IMAGE", "mariadb:11"),
			ExposedPorts: []string{string(tcpDbPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": envOr("DB_ROOT_PASSWORD", "root"),
				"MYSQL_DATABASE":      envOr("DB_DATABASE", "sandwich_ops"),
				"MYSQL_USER":          envOr("DB_USER", "opsdb"),
				"MYSQL_PASSWORD":      envOr("DB_PASSWORD", "opsdb"),
			},
			WaitingFor: wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second),
			Networks:   []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {dbNetworkName},
			},
		},
		Started: true,
	})
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to start Database")
	}
	tc.DBContainer = dbContainer

	dbHost, _ := dbContainer.Host(ctx)
	dbPort, _ := dbContainer.MappedPort(ctx, tcpDbPort)
	tc.DBHost = dbHost
	tc.DBPort = dbPort.Port()
	tc.DBName = envOr("DB_DATABASE", "sandwich_ops")
	tc.DBUserVar = envOr("DB_USER", "opsdb")

	if err := performMariaDBInit(t, tc, dbHost, dbPort); err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to initialize databases")
	}

	// Authorizer container
	authzNetworkName := "authorizer"
	tcpAuthzPort, err := nat.NewPort("tcp", envOr("AUTHZ_PORT", "8080"))
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to create Authorizer port")
	}
	authzDbConnection := fmt.Sprintf("root:%s@tcp(%s:%s)/%s",
		envOr("DB_ROOT_PASSWORD", "root"), dbNetworkName, envOr("DB_PORT", "3306"),
		envOr("AUTHZ_DATABASE", "authorizer"))
	authorizerContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("AUTHZ_IMAGE", "lakhansamani/authorizer:1.4.4"),
			ExposedPorts: []string{string(tcpAuthzPort)},
			Env: map[string]string{
				"ENV":           "production",
				"CLIENT_ID":     envOr("AUTHZ_CLIENT_ID", "sandwich-opsdb"),
				"PORT":          envOr("AUTHZ_PORT", "8080"),
				"DATABASE_TYPE": "mariadb",
				"DATABASE_NAME": envOr("AUTHZ_DATABASE", "authorizer"),
				"DATABASE_URL":  authzDbConnection,
				"ADMIN_SECRET":  envOr("AUTHZ_ADMIN_SECRET", "admin"),
				"ROLES":         "admin,user",
				"DEFAULT_ROLES": "user",
				"LOG_LEVEL":     "info",
			},
			WaitingFor: wait.ForLog("Authorizer running at PORT:").WithStartupTimeout(10 * time.Second),
			Networks:   []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {authzNetworkName},
			},
		},
		Started: true,
	})
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to start Authorizer")
	}
	tc.AuthorizerContainer = authorizerContainer

	authzHost, _ := authorizerContainer.Host(ctx)
	authzPort, _ := authorizerContainer.MappedPort(ctx, tcpAuthzPort)
	tc.AuthzURL = fmt.Sprintf("http://%s:%s", authzHost, authzPort.Port())
	logMessage(t, "AUTHZ_URL=%s", tc.AuthzURL)
	logMessage(t, "DB=%s:%s", tc.DBHost, tc.DBPort)

	return tc, nil
}

func performMariaDBInit(t *testing.T, tc *TestContainers, dbHost string, dbPort nat.Port) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/",
		envOr("DB_ROOT_PASSWORD", "root"), dbHost, dbPort.Port()))
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to connect to MariaDB for setup")
	}
	defer db.Close()

	// Wait for connection to be really ready
	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "MariaDB not ready after 30 seconds")
	}

	stmts := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", envOr("AUTHZ_DATABASE", "authorizer")),
		fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'",
			envOr("DB_USER", "opsdb"), envOr("DB_PASSWORD", "opsdb")),
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%w : when executing > %s", err, stmt)
		}
	}

	if err := executeSQL(db, data.InitdbMariaDBTables); err != nil {
		return err
	}
	return executeSQL(db, data.InitdbMariaDBPrivileges)
}

func executeSQL(db *sql.DB, script string) error {
	var clean []string
	for _, line := range strings.Split(script, "\n") {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		clean = append(clean, line)
	}

	joined := strings.Join(clean, "\n")
	queries := strings.Split(joined, ";")

	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), q)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
