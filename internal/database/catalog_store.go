package database

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/yishak-cs/marmitas/internal/catalog"
	"github.com/yishak-cs/marmitas/internal/models"
)

// CatalogStore keeps the menu as :MenuItem nodes in Neo4j
type CatalogStore struct {
	client *Neo4jClient
	logger *zap.Logger
}

// NewCatalogStore creates a new catalog store
func NewCatalogStore(client *Neo4jClient) *CatalogStore {
	return &CatalogStore{client: client, logger: client.logger}
}

// EnsureSchema creates the uniqueness constraint on item names
func (s *CatalogStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE CONSTRAINT menu_item_name IF NOT EXISTS
		FOR (m:MenuItem) REQUIRE m.name IS UNIQUE
	`
	if err := s.client.ExecuteWrite(ctx, query, nil); err != nil {
		return fmt.Errorf("failed to create menu item constraint: %w", err)
	}
	return nil
}

// SeedCatalog replaces the stored menu with items, keeping their order
func (s *CatalogStore) SeedCatalog(ctx context.Context, items []models.MenuItem) error {
	if err := catalog.Validate(items); err != nil {
		return err
	}

	rows := make([]interface{}, 0, len(items))
	names := make([]interface{}, 0, len(items))
	for i, it := range items {
		rows = append(rows, itemParams(it, i))
		names = append(names, it.Name)
	}

	upsertQuery := `
		UNWIND $items AS item
		MERGE (m:MenuItem {name: item.name})
		SET m.description = item.description,
			m.weight = item.weight,
			m.price = item.price,
			m.image = item.image,
			m.category = item.category,
			m.position = item.position
	`
	pruneQuery := `
		MATCH (m:MenuItem)
		WHERE NOT m.name IN $names
		DETACH DELETE m
	`

	err := s.client.ExecuteWriteTransaction(ctx, func(tx neo4j.ManagedTransaction) error {
		if _, err := tx.Run(ctx, upsertQuery, map[string]interface{}{"items": rows}); err != nil {
			return fmt.Errorf("failed to upsert menu items: %w", err)
		}
		if _, err := tx.Run(ctx, pruneQuery, map[string]interface{}{"names": names}); err != nil {
			return fmt.Errorf("failed to prune menu items: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("catalog seeded", zap.Int("items", len(items)))
	return nil
}

// LoadCatalog reads the stored menu in seed order
func (s *CatalogStore) LoadCatalog(ctx context.Context) ([]models.MenuItem, error) {
	query := `
		MATCH (m:MenuItem)
		RETURN m.name AS name,
			   m.description AS description,
			   m.weight AS weight,
			   m.price AS price,
			   m.image AS image,
			   m.category AS category
		ORDER BY m.position ASC, m.name ASC
	`

	results, err := s.client.ExecuteRead(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	items := make([]models.MenuItem, 0, len(results))
	for i, row := range results {
		it, err := rowToRecord(row).ToItem(i)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	s.logger.Info("catalog loaded from neo4j", zap.Int("items", len(items)))
	return items, nil
}

func itemParams(it models.MenuItem, position int) map[string]interface{} {
	r := catalog.RecordFromItem(it)
	return map[string]interface{}{
		"name":        r.Name,
		"description": r.Description,
		"weight":      r.Weight,
		"price":       r.Price,
		"image":       r.Image,
		"category":    r.Category,
		"position":    position,
	}
}

// rowToRecord maps a query row onto a catalog record. Missing or null
// properties become empty strings and are caught by validation.
func rowToRecord(row map[string]interface{}) catalog.Record {
	return catalog.Record{
		Name:        stringField(row, "name"),
		Description: stringField(row, "description"),
		Weight:      stringField(row, "weight"),
		Price:       stringField(row, "price"),
		Image:       stringField(row, "image"),
		Category:    stringField(row, "category"),
	}
}

func stringField(row map[string]interface{}, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.2f", v)
	case int64:
		return fmt.Sprintf("%d", v)
	default:
		return ""
	}
}
