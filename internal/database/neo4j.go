package database

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// Neo4jClient holds the driver used for the menu catalog
type Neo4jClient struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

// Config holds the Neo4j connection configuration
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// Enabled reports whether a connection URI was configured
func (c Config) Enabled() bool {
	return c.URI != ""
}

// NewNeo4jClient opens a driver and verifies it can reach the server
func NewNeo4jClient(ctx context.Context, config Config, logger *zap.Logger) (*Neo4jClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	driver, err := neo4j.NewDriverWithContext(config.URI, neo4j.BasicAuth(config.Username, config.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if closeErr := driver.Close(closeCtx); closeErr != nil {
			logger.Warn("failed to close neo4j driver", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	logger.Info("connected to neo4j", zap.String("uri", config.URI), zap.String("database", config.Database))
	return &Neo4jClient{
		driver:   driver,
		database: config.Database,
		logger:   logger,
	}, nil
}

// Close closes the Neo4j driver connection
func (c *Neo4jClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// ExecuteWrite runs a single write statement against the leader
func (c *Neo4jClient) ExecuteWrite(ctx context.Context, query string, params map[string]interface{}) error {
	if _, err := c.query(ctx, query, params, neo4j.ExecuteQueryWithWritersRouting()); err != nil {
		return fmt.Errorf("failed to execute write query: %w", err)
	}
	return nil
}

// ExecuteRead runs a read statement and returns each record keyed by column
func (c *Neo4jClient) ExecuteRead(ctx context.Context, query string, params map[string]interface{}) ([]map[string]interface{}, error) {
	result, err := c.query(ctx, query, params, neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return nil, fmt.Errorf("failed to execute read query: %w", err)
	}

	rows := make([]map[string]interface{}, 0, len(result.Records))
	for _, record := range result.Records {
		rows = append(rows, record.AsMap())
	}
	return rows, nil
}

// Health pings the configured database
func (c *Neo4jClient) Health(ctx context.Context) error {
	if _, err := c.query(ctx, "RETURN 1", nil, neo4j.ExecuteQueryWithReadersRouting()); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

func (c *Neo4jClient) query(ctx context.Context, query string, params map[string]interface{}, routing neo4j.ExecuteQueryConfigurationOption) (*neo4j.EagerResult, error) {
	start := time.Now()
	result, err := neo4j.ExecuteQuery(ctx, c.driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(c.database),
		routing)
	c.logger.Debug("neo4j query",
		zap.Duration("took", time.Since(start)),
		zap.Bool("ok", err == nil))
	return result, err
}

// ExecuteWriteTransaction runs work inside a single write transaction
func (c *Neo4jClient) ExecuteWriteTransaction(ctx context.Context, work func(neo4j.ManagedTransaction) error) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		return nil, work(tx)
	})
	if err != nil {
		return fmt.Errorf("failed to execute write transaction: %w", err)
	}

	return nil
}
