// Package db is a sqlite backed store.Store built on gorm.
package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/govm-net/guestsdk/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const (
	defaultDBPath = "./hostsim.db"
)

// DBAccount marks an account as created and holds its contract code.
type DBAccount struct {
	ID       string `gorm:"column:account_id;primaryKey;size:255"`
	Contract []byte `gorm:"column:contract;type:blob"`
}

// TableName specifies the table name for DBAccount
func (DBAccount) TableName() string {
	return "accounts"
}

// DBData is one keyed data entry of an account.
type DBData struct {
	Account string `gorm:"column:account_id;primaryKey;size:255"`
	Key     string `gorm:"column:data_key;primaryKey;size:255"`
	Value   []byte `gorm:"column:data_value;type:blob;not null"`
}

// TableName specifies the table name for DBData
func (DBData) TableName() string {
	return "account_data"
}

// DBAsset is the record named Name held by Account.
type DBAsset struct {
	Account string `gorm:"column:account_id;primaryKey;size:255"`
	Name    string `gorm:"column:asset_name;primaryKey;size:255"`
	Value   []byte `gorm:"column:asset_value;type:blob"`
}

// TableName specifies the table name for DBAsset
func (DBAsset) TableName() string {
	return "account_assets"
}

// Store implements store.Store on sqlite.
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

func init() {
	if err := store.Register(store.DBType, func(params map[string]any) (store.Store, error) {
		return Open(params)
	}); err != nil {
		panic(err)
	}
}

// Open opens or creates the database at params["db_path"].
func Open(params map[string]any) (*Store, error) {
	dbPath := defaultDBPath
	if path, ok := params["db_path"].(string); ok && path != "" {
		dbPath = path
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&DBAccount{}, &DBData{}, &DBAsset{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) touch(tx *gorm.DB, id string) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&DBAccount{ID: id}).Error
}

func (s *Store) Data(id, key string) ([]byte, error) {
	var row DBData
	err := s.db.Where("account_id = ? AND data_key = ?", id, key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	return store.Clone(row.Value), nil
}

func (s *Store) SetData(id, key string, value []byte) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.touch(tx, id); err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		if len(value) == 0 {
			return tx.Where("account_id = ? AND data_key = ?", id, key).Delete(&DBData{}).Error
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "data_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data_value"}),
		}).Create(&DBData{Account: id, Key: key, Value: value}).Error
	})
}

func (s *Store) Keys(id, prefix string) ([]string, error) {
	var keys []string
	err := s.db.Model(&DBData{}).Where("account_id = ?", id).Pluck("data_key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	keys = store.FilterKeys(keys, prefix)
	return keys, nil
}

func (s *Store) Asset(id, name string) ([]byte, error) {
	var row DBAsset
	err := s.db.Where("account_id = ? AND asset_name = ?", id, name).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load asset: %w", err)
	}
	return store.Clone(row.Value), nil
}

func (s *Store) SetAsset(id, name string, value []byte) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.touch(tx, id); err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "asset_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"asset_value"}),
		}).Create(&DBAsset{Account: id, Name: name, Value: value}).Error
	})
}

func (s *Store) Contract(id string) ([]byte, error) {
	var acc DBAccount
	err := s.db.Where("account_id = ?", id).Take(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return store.Clone(acc.Contract), nil
}

func (s *Store) SetContract(id string, code []byte) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"contract"}),
	}).Create(&DBAccount{ID: id, Contract: store.Clone(code)}).Error
}

func (s *Store) HasAccount(id string) (bool, error) {
	var n int64
	if err := s.db.Model(&DBAccount{}).Where("account_id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to count accounts: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
