package repositories

import (
	"context"
	"errors"

	"ecofly/radar/internal/models/gorm"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AirportRepository handles airport table operations
type AirportRepository struct {
	db *gormlib.DB
}

func NewAirportRepository(db *gormlib.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// FindByIATA finds an airport by IATA code (case-insensitive). A missing
// row is (nil, nil).
func (r *AirportRepository) FindByIATA(ctx context.Context, iata string) (*gorm.Airport, error) {
	var airport gorm.Airport

	err := r.db.WithContext(ctx).
		Where("UPPER(iata) = UPPER(?)", iata).
		First(&airport).Error
	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &airport, nil
}

// List returns every airport ordered by IATA code.
func (r *AirportRepository) List(ctx context.Context) ([]gorm.Airport, error) {
	var airports []gorm.Airport
	err := r.db.WithContext(ctx).Order("iata").Find(&airports).Error
	return airports, err
}

// Upsert inserts airports, overwriting rows that share an IATA code.
func (r *AirportRepository) Upsert(ctx context.Context, airports []gorm.Airport) error {
	if len(airports) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "iata"}},
			DoUpdates: clause.AssignmentColumns([]string{"icao", "name", "city", "country", "latitude", "longitude", "updated_at"}),
		}).
		CreateInBatches(airports, 100).Error
}

// DeleteAll deletes all airports (useful for re-importing)
func (r *AirportRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&gorm.Airport{}).Error
}

func (r *AirportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.Airport{}).Count(&count).Error
	return count, err
}
