package attendance

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerSnapshot is the row holding one tenant's serialized punch list.
type LedgerSnapshot struct {
	StorageKey string    `gorm:"column:storage_key;type:varchar(255);primaryKey"`
	Payload    string    `gorm:"column:payload;type:text;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (LedgerSnapshot) TableName() string {
	return "attendance_ledgers"
}

// GormStore persists ledgers in postgres, one row per storage key.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&LedgerSnapshot{})
}

func (s *GormStore) Load(ctx context.Context, key string) ([]PunchRecord, error) {
	var row LedgerSnapshot
	err := s.db.WithContext(ctx).
		Where("storage_key = ?", key).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return DecodeRecords([]byte(row.Payload))
}

func (s *GormStore) Save(ctx context.Context, key string, records []PunchRecord) error {
	payload, err := EncodeRecords(records)
	if err != nil {
		return err
	}
	row := LedgerSnapshot{
		StorageKey: key,
		Payload:    string(payload),
		UpdatedAt:  time.Now().UTC(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}
