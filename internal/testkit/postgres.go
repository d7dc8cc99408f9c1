// Package testkit start external services for integration tests.
package testkit

//
// postgres.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gitlab.com/kabes/go-quizmaster/internal/config"
)

// IntegrationEnv enable integration tests when set to 1/true/yes.
const IntegrationEnv = "RUN_INTEGRATION_TESTS"

const (
	postgresImage    = "postgres:17-alpine"
	postgresPort     = nat.Port("5432/tcp")
	postgresPassword = "quizmaster-test"
	startupTimeout   = 2 * time.Minute
	terminateTimeout = 30 * time.Second
)

// RequireIntegration skip test when integration tests are disabled or docker is not available.
func RequireIntegration(t testing.TB) {
	t.Helper()

	value := strings.ToLower(strings.TrimSpace(os.Getenv(IntegrationEnv)))
	if !slices.Contains([]string{"1", "true", "yes"}, value) {
		t.Skipf("skipping integration test; set %s=1 to run", IntegrationEnv)
	}

	provider, err := testcontainers.NewDockerProvider()
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	_ = provider.Close()
}

// StartPostgres start postgres container and return DB_* settings pointing to it.
// Container is removed on test cleanup.
func StartPostgres(ctx context.Context, t testing.TB) config.MapSettings {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{string(postgresPort)},
			Env: map[string]string{
				"POSTGRES_USER":     config.DefaultDBUser,
				"POSTGRES_PASSWORD": postgresPassword,
				"POSTGRES_DB":       config.DefaultDBName,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres container failed: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), terminateTimeout)
		defer cancel()

		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("get postgres container host failed: %v", err)
	}

	port, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		t.Fatalf("get postgres container port failed: %v", err)
	}

	return config.MapSettings{
		config.KeyDBHost:     host,
		config.KeyDBPort:     port.Port(),
		config.KeyDBPassword: postgresPassword,
	}
}
