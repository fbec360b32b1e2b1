package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/nova-scholar-service/internal/store"
)

// DocumentRecord is one document row. Collection holds the parent collection path
// so sub-collections ("courses/abc/students") are queried exactly like top-level ones.
type DocumentRecord struct {
	Path       string         `gorm:"primaryKey;size:512"`
	Collection string         `gorm:"index;size:512;not null"`
	DocID      string         `gorm:"size:255;not null"`
	Data       datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (DocumentRecord) TableName() string {
	return "documents"
}

// PostgresStore implements store.Store on a single jsonb table
type PostgresStore struct {
	db *gorm.DB
}

// Open connects with the given DSN and ensures the documents table exists
func Open(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return New(db)
}

// New wraps an existing gorm connection
func New(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&DocumentRecord{}); err != nil {
		return nil, fmt.Errorf("failed to prepare documents table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

type postgresDocument struct {
	id   string
	data datatypes.JSON
}

func (d postgresDocument) ID() string { return d.id }

func (d postgresDocument) DataTo(dest interface{}) error {
	return json.Unmarshal(d.data, dest)
}

func (s *PostgresStore) Get(ctx context.Context, path string, dest interface{}) error {
	if _, _, err := store.SplitDocPath(path); err != nil {
		return err
	}
	var record DocumentRecord
	if err := s.db.WithContext(ctx).Where("path = ?", path).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.ErrNotFound
		}
		return fmt.Errorf("failed to get %s: %w", path, err)
	}
	if dest == nil {
		return nil
	}
	return json.Unmarshal(record.Data, dest)
}

func (s *PostgresStore) Set(ctx context.Context, path string, data map[string]interface{}) error {
	collection, id, err := store.SplitDocPath(path)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(store.Resolve(data, time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	record := DocumentRecord{Path: path, Collection: collection, DocID: id, Data: datatypes.JSON(raw)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&record).Error
}

func (s *PostgresStore) Merge(ctx context.Context, path string, data map[string]interface{}) error {
	collection, id, err := store.SplitDocPath(path)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing := map[string]interface{}{}
		var record DocumentRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("path = ?", path).First(&record).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			record = DocumentRecord{Path: path, Collection: collection, DocID: id}
		case err != nil:
			return fmt.Errorf("failed to load %s: %w", path, err)
		default:
			if err := json.Unmarshal(record.Data, &existing); err != nil {
				return fmt.Errorf("failed to decode %s: %w", path, err)
			}
		}

		store.MergeInto(existing, store.Resolve(data, time.Now().UTC()))
		raw, err := json.Marshal(existing)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", path, err)
		}
		record.Data = datatypes.JSON(raw)
		return tx.Save(&record).Error
	})
}

func (s *PostgresStore) Update(ctx context.Context, path string, updates []store.Update) error {
	if _, _, err := store.SplitDocPath(path); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record DocumentRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("path = ?", path).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}

		data := map[string]interface{}{}
		if err := json.Unmarshal(record.Data, &data); err != nil {
			return fmt.Errorf("failed to decode %s: %w", path, err)
		}
		if err := store.ApplyUpdates(data, updates, time.Now().UTC()); err != nil {
			return err
		}
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", path, err)
		}
		record.Data = datatypes.JSON(raw)
		return tx.Save(&record).Error
	})
}

func (s *PostgresStore) Delete(ctx context.Context, path string) error {
	if _, _, err := store.SplitDocPath(path); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("path = ?", path).Delete(&DocumentRecord{}).Error
}

func (s *PostgresStore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	if err := store.ValidCollectionPath(collection); err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := s.Set(ctx, store.Join(collection, id), data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *PostgresStore) Stream(ctx context.Context, collection string, filters []store.Filter, fn func(store.Document) error) error {
	if err := store.ValidCollectionPath(collection); err != nil {
		return err
	}

	rows, err := s.filtered(ctx, collection, filters).Rows()
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	for rows.Next() {
		var record DocumentRecord
		if err := s.db.ScanRows(rows, &record); err != nil {
			return fmt.Errorf("failed to scan %s: %w", collection, err)
		}
		if err := fn(postgresDocument{id: record.DocID, data: record.Data}); err != nil {
			return err
		}
	}
	return rows.Err()
}

// filtered selects the direct children of collection whose top-level fields
// equal every filter value
func (s *PostgresStore) filtered(ctx context.Context, collection string, filters []store.Filter) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&DocumentRecord{}).Where("collection = ?", collection)
	for _, f := range filters {
		query = query.Where(datatypes.JSONQuery("data").Equals(f.Value, f.Field))
	}
	return query
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
