package applock

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ImCitizen13/diyaa-al-quran/internal/config"
	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
)

// KeyValueStore is where the PIN hash is kept.
type KeyValueStore interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

type pinRecord struct {
	Hash      string    `json:"hash"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Service struct {
	store KeyValueStore
	cost  int
}

func NewService(store KeyValueStore, cfg config.AppLock) *Service {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{store: store, cost: cost}
}

func (s *Service) record(ctx context.Context) (*pinRecord, error) {
	raw, ok, err := s.store.GetItem(ctx, entities.KeyAppLock)
	if err != nil {
		return nil, fmt.Errorf("read app lock: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var rec pinRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil || rec.Hash == "" {
		log.Printf("[APPLOCK] Ignoring malformed PIN record")
		return nil, nil
	}
	return &rec, nil
}

func (s *Service) HasPIN(ctx context.Context) (bool, error) {
	rec, err := s.record(ctx)
	return rec != nil, err
}

// Verify checks pin against the stored hash. ErrNoPIN when none is set.
func (s *Service) Verify(ctx context.Context, pin string) error {
	rec, err := s.record(ctx)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNoPIN
	}
	return CheckPIN(pin, rec.Hash)
}

// SetPIN sets or changes the PIN. Changing an existing PIN requires the
// current one.
func (s *Service) SetPIN(ctx context.Context, current, pin string) error {
	rec, err := s.record(ctx)
	if err != nil {
		return err
	}
	if rec != nil {
		if err := CheckPIN(current, rec.Hash); err != nil {
			return err
		}
	}

	hash, err := HashPIN(pin, s.cost)
	if err != nil {
		return err
	}
	data, err := json.Marshal(pinRecord{Hash: hash, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	if err := s.store.SetItem(ctx, entities.KeyAppLock, string(data)); err != nil {
		return fmt.Errorf("save app lock: %w", err)
	}
	log.Printf("[APPLOCK] PIN updated")
	return nil
}

// RemovePIN turns the lock off after checking the current PIN.
func (s *Service) RemovePIN(ctx context.Context, current string) error {
	if err := s.Verify(ctx, current); err != nil {
		return err
	}
	if err := s.store.RemoveItem(ctx, entities.KeyAppLock); err != nil {
		return fmt.Errorf("remove app lock: %w", err)
	}
	log.Printf("[APPLOCK] PIN removed")
	return nil
}
