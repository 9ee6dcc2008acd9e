package gorm

import (
	"time"
)

// Airport is one row of the airport reference catalog.
type Airport struct {
	IATA      string    `gorm:"column:iata;primaryKey;type:varchar(3)"`
	ICAO      string    `gorm:"column:icao;type:varchar(4)"`
	Name      string    `gorm:"column:name;type:text"`
	City      string    `gorm:"column:city;type:varchar(100);not null"`
	Country   string    `gorm:"column:country;type:varchar(100)"`
	Latitude  float64   `gorm:"column:latitude;not null"`
	Longitude float64   `gorm:"column:longitude;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}
