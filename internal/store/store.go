// Package store keeps the history of seating runs started through the server.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	StatusInProgress = "in progress"
	StatusSuccess    = "success"
	StatusFailed     = "failed"
)

var ErrNotFound = errors.New("run not found")

type Run struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Status    string    `json:"status"`
	Report    string    `json:"report"`
	Data      string    `json:"-"`
	Buffer    int       `json:"buffer"`
	Sparse    bool      `json:"sparse"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at path and migrates the run table.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return New(db)
}

func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Create registers a new run in progress.
func (s *Store) Create(ctx context.Context, buffer int, sparse bool) (*Run, error) {
	run := &Run{
		ID:     uuid.NewString(),
		Status: StatusInProgress,
		Buffer: buffer,
		Sparse: sparse,
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// Complete stores the assignment table and report of a finished run.
func (s *Store) Complete(ctx context.Context, id, data, report string) error {
	return s.update(ctx, id, map[string]any{"status": StatusSuccess, "data": data, "report": report})
}

func (s *Store) Fail(ctx context.Context, id string, cause error) error {
	return s.update(ctx, id, map[string]any{"status": StatusFailed, "data": "", "report": cause.Error()})
}

func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	run := &Run{}
	err := s.db.WithContext(ctx).First(run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns every run, newest first.
func (s *Store) List(ctx context.Context) ([]*Run, error) {
	var runs []*Run
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&runs).Error
	return runs, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&Run{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) update(ctx context.Context, id string, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&Run{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
