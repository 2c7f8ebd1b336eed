// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultNeo4jImage is the community edition image used in tests.
	DefaultNeo4jImage = "neo4j:5-community"

	// DefaultBoltPort is the Bolt protocol port inside the container.
	DefaultBoltPort = "7687"

	// DefaultHTTPPort is the Neo4j browser port inside the container.
	DefaultHTTPPort = "7474"

	// DefaultNeo4jPassword is the initial password set through NEO4J_AUTH.
	// Neo4j 5 rejects passwords shorter than 8 characters.
	DefaultNeo4jPassword = "stylehive-test"
)

// Neo4jContainer is a running Neo4j instance.
type Neo4jContainer struct {
	testcontainers.Container
	BoltURI  string
	Username string
	Password string
}

// Neo4jOption configures the Neo4j container.
type Neo4jOption func(*neo4jConfig)

type neo4jConfig struct {
	image        string
	password     string
	startTimeout time.Duration
}

// WithNeo4jImage sets a custom Neo4j image.
func WithNeo4jImage(image string) Neo4jOption {
	return func(c *neo4jConfig) {
		c.image = image
	}
}

// WithNeo4jPassword sets the initial password for the neo4j user.
func WithNeo4jPassword(password string) Neo4jOption {
	return func(c *neo4jConfig) {
		c.password = password
	}
}

// WithStartTimeout sets how long to wait for Bolt to accept connections.
func WithStartTimeout(timeout time.Duration) Neo4jOption {
	return func(c *neo4jConfig) {
		c.startTimeout = timeout
	}
}

// NewNeo4jContainer creates and starts a Neo4j container.
func NewNeo4jContainer(ctx context.Context, opts ...Neo4jOption) (*Neo4jContainer, error) {
	cfg := &neo4jConfig{
		image:        DefaultNeo4jImage,
		password:     DefaultNeo4jPassword,
		startTimeout: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{DefaultBoltPort + "/tcp", DefaultHTTPPort + "/tcp"},
		Env: map[string]string{
			"NEO4J_AUTH":                         "neo4j/" + cfg.password,
			"NEO4J_server_memory_heap_max__size": "512m",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("Started."),
			wait.ForListeningPort(DefaultBoltPort+"/tcp"),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create neo4j container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, DefaultBoltPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &Neo4jContainer{
		Container: container,
		BoltURI:   fmt.Sprintf("bolt://%s:%s", host, port.Port()),
		Username:  "neo4j",
		Password:  cfg.password,
	}, nil
}

// Logs returns the container logs for debugging.
func (c *Neo4jContainer) Logs(ctx context.Context) (string, error) {
	reader, err := c.Container.Logs(ctx)
	if err != nil {
		return "", fmt.Errorf("get logs: %w", err)
	}
	defer reader.Close()

	var logs []byte
	buf := make([]byte, 1024)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			logs = append(logs, buf[:n]...)
		}
		if err != nil {
			break
		}
	}
	return string(logs), nil
}
