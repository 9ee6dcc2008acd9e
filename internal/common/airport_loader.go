package common

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	gormlib "gorm.io/gorm"

	"ecofly/radar/internal/catalog"
	"ecofly/radar/internal/db/repositories"
	"ecofly/radar/internal/models/gorm"
)

// AirportLoader fills the airport catalog store and reads it back as the
// immutable table the simulation uses.
type AirportLoader struct {
	repo *repositories.AirportRepository
	log  *zap.SugaredLogger
}

// RawAirportData represents the structure of airport data from JSON
type RawAirportData struct {
	ICAO    string  `json:"icao"`
	IATA    string  `json:"iata"`
	Name    string  `json:"name"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func NewAirportLoader(db *gormlib.DB, log *zap.SugaredLogger) *AirportLoader {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &AirportLoader{repo: repositories.NewAirportRepository(db), log: log}
}

// LoadFromJSON upserts airports from a reader.
// Expected format: object with airport data as values
// Example: {"KJFK": {"icao": "KJFK", "iata": "JFK", "city": "New York", ...}}
// Records without an IATA code are skipped.
func (l *AirportLoader) LoadFromJSON(ctx context.Context, reader io.Reader) (int, error) {
	var rawData map[string]RawAirportData
	if err := json.NewDecoder(reader).Decode(&rawData); err != nil {
		return 0, fmt.Errorf("failed to decode JSON: %w", err)
	}
	if len(rawData) == 0 {
		return 0, fmt.Errorf("no airport data found in JSON")
	}

	airports := make([]gorm.Airport, 0, len(rawData))
	for _, raw := range rawData {
		airport := gorm.Airport{
			IATA:      strings.ToUpper(strings.TrimSpace(raw.IATA)),
			ICAO:      strings.ToUpper(strings.TrimSpace(raw.ICAO)),
			Name:      strings.TrimSpace(raw.Name),
			City:      strings.TrimSpace(raw.City),
			Country:   strings.TrimSpace(raw.Country),
			Latitude:  raw.Lat,
			Longitude: raw.Lon,
		}
		if len(airport.IATA) != 3 || airport.City == "" {
			continue
		}
		airports = append(airports, airport)
	}
	if len(airports) == 0 {
		return 0, fmt.Errorf("no valid airports found after parsing")
	}

	if err := l.repo.Upsert(ctx, airports); err != nil {
		return 0, fmt.Errorf("failed to insert airports: %w", err)
	}
	l.log.Infow("imported airports", "parsed", len(rawData), "stored", len(airports))
	return len(airports), nil
}

// SeedDefaults writes the built-in airports when the store is empty.
func (l *AirportLoader) SeedDefaults(ctx context.Context) (int, error) {
	count, err := l.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count airports: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	defaults := catalog.DefaultAirports()
	rows := make([]gorm.Airport, 0, len(defaults))
	for _, a := range defaults {
		rows = append(rows, gorm.Airport{IATA: a.IATA, City: a.City, Latitude: a.Lat, Longitude: a.Lng})
	}
	if err := l.repo.Upsert(ctx, rows); err != nil {
		return 0, fmt.Errorf("failed to seed airports: %w", err)
	}
	l.log.Infow("seeded default airports", "count", len(rows))
	return len(rows), nil
}

// Airports reads the store into a catalog table.
func (l *AirportLoader) Airports(ctx context.Context) (*catalog.Airports, error) {
	rows, err := l.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list airports: %w", err)
	}
	list := make([]catalog.Airport, 0, len(rows))
	for _, r := range rows {
		list = append(list, catalog.Airport{IATA: r.IATA, City: r.City, Lat: r.Latitude, Lng: r.Longitude})
	}
	return catalog.NewAirports(list)
}

// GetStats returns statistics about loaded airports
func (l *AirportLoader) GetStats(ctx context.Context) (map[string]interface{}, error) {
	count, err := l.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"total_airports": count}, nil
}
