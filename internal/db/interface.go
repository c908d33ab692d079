// Package db defines repository interfaces for the dreamlog stores.
package db

import (
	"context"

	"github.com/thebtf/dreamlog/pkg/models"
)

// DreamStore defines operations on dream entries.
type DreamStore interface {
	GetAll(ctx context.Context) ([]*models.Dream, error)
	GetByID(ctx context.Context, id int64) (*models.Dream, error)
	GetByUser(ctx context.Context, userID int64) ([]*models.Dream, error)
	Create(ctx context.Context, input models.CreateDreamInput) (*models.Dream, error)
	Update(ctx context.Context, id int64, patch models.DreamPatch) (*models.Dream, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// DreamSymbolReader defines read operations for dream symbols.
type DreamSymbolReader interface {
	GetAll(ctx context.Context) ([]*models.DreamSymbol, error)
	GetByID(ctx context.Context, id int64) (*models.DreamSymbol, error)
	GetByDream(ctx context.Context, dreamID int64) ([]*models.DreamSymbol, error)
}

// DreamSymbolWriter defines write operations for dream symbols.
type DreamSymbolWriter interface {
	Create(ctx context.Context, input models.CreateDreamSymbolInput) (*models.DreamSymbol, error)
	BulkInsert(ctx context.Context, inputs []models.CreateDreamSymbolInput) ([]*models.DreamSymbol, error)
	Update(ctx context.Context, id int64, patch models.DreamSymbolPatch) (*models.DreamSymbol, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByDream(ctx context.Context, dreamID int64) (int64, error)
}

// DreamSymbolStore combines read and write operations for dream symbols.
type DreamSymbolStore interface {
	DreamSymbolReader
	DreamSymbolWriter
}

// SynchronicityStore defines operations on synchronicities.
type SynchronicityStore interface {
	GetAll(ctx context.Context) ([]*models.Synchronicity, error)
	GetByID(ctx context.Context, id int64) (*models.Synchronicity, error)
	GetByDream(ctx context.Context, dreamID int64) ([]*models.Synchronicity, error)
	Create(ctx context.Context, input models.CreateSynchronicityInput) (*models.Synchronicity, error)
	Update(ctx context.Context, id int64, patch models.SynchronicityPatch) (*models.Synchronicity, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByDream(ctx context.Context, dreamID int64) (int64, error)
}

// AlarmStore defines operations on alarms.
type AlarmStore interface {
	GetAll(ctx context.Context) ([]*models.Alarm, error)
	GetByID(ctx context.Context, id int64) (*models.Alarm, error)
	GetByUser(ctx context.Context, userID int64) ([]*models.Alarm, error)
	Create(ctx context.Context, input models.CreateAlarmInput) (*models.Alarm, error)
	Update(ctx context.Context, id int64, patch models.AlarmPatch) (*models.Alarm, error)
	SetEnabled(ctx context.Context, id int64, enabled bool) (*models.Alarm, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// HoroscopeReader defines read operations for horoscopes.
type HoroscopeReader interface {
	GetByID(ctx context.Context, id int64) (*models.Horoscope, error)
	GetByUser(ctx context.Context, userID int64) ([]*models.Horoscope, error)
	GetByUserAndDate(ctx context.Context, userID int64, readingDate string) ([]*models.Horoscope, error)
	GetLatestForUser(ctx context.Context, userID int64) (*models.Horoscope, error)
}

// HoroscopeWriter defines write operations for horoscopes.
type HoroscopeWriter interface {
	Create(ctx context.Context, input models.CreateHoroscopeInput) (*models.Horoscope, error)
	Update(ctx context.Context, id int64, patch models.HoroscopePatch) (*models.Horoscope, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// HoroscopeStore combines read and write operations for horoscopes.
type HoroscopeStore interface {
	HoroscopeReader
	HoroscopeWriter
}

// UserProfileStore defines operations on the singleton user profile.
type UserProfileStore interface {
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	UpsertProfile(ctx context.Context, input models.UpsertUserProfileInput) (*models.UserProfile, error)
	DeleteProfile(ctx context.Context) (bool, error)
}
