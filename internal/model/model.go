package model

import (
	"database/sql"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Region{},
	&Location{},
	&Event{},
	&EnginePerformance{},
}

////////////////////////
// DIRECTORY MODELS
////////////////////////

// Region groups locations under an F3 region (the organizational unit
// workouts belong to).
type Region struct {
	gorm.Model
	Name        string `json:"name" gorm:"size:127;index:idx_region_name"`
	Description string `json:"description" gorm:"size:255"`
	Website     string `json:"website" gorm:"size:255"`
	LogoURL     string `json:"logoUrl" gorm:"size:255"`
}

func (*Region) TableName() string {
	return "regions"
}

// Location is a workout site: a named place with an optional position
// and the events held there.
type Location struct {
	gorm.Model
	RegionID    uint   `json:"regionId" gorm:"index:idx_location_region_id"`
	Region      Region `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:RegionID;"`
	Name        string `json:"name" gorm:"size:127;index:idx_location_name"`
	Description string `json:"description" gorm:"size:2000"`
	LogoURL     string `json:"logoUrl" gorm:"size:255"`

	// Position holds lng/lat as X/Y. A location without coordinates
	// stores the empty point.
	Position    geom.Point `json:"position"`
	HasPosition bool       `json:"hasPosition" gorm:"default:false"`

	Events []Event `json:"events"`
}

func (*Location) TableName() string {
	return "locations"
}

// Event is a recurring workout at a location.
type Event struct {
	gorm.Model
	LocationID  uint     `json:"locationId" gorm:"index:idx_event_location_id"`
	Location    Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:LocationID;"`
	Name        string   `json:"name" gorm:"size:127;index:idx_event_name"`
	Description string   `json:"description" gorm:"size:2000"`

	// DayOfWeek is 0 (Sunday) through 6 (Saturday); null when the event
	// has no fixed day.
	DayOfWeek sql.NullInt16 `json:"dayOfWeek"`

	// StartTime and EndTime are "HH:mm" strings; empty when unknown.
	StartTime string `json:"startTime" gorm:"size:5"`
	EndTime   string `json:"endTime" gorm:"size:5"`

	// Types and Categories are JSON arrays of tag names, e.g.
	// ["Bootcamp"] and ["1stF"].
	Types      datatypes.JSON `json:"types"`
	Categories datatypes.JSON `json:"categories"`
}

func (*Event) TableName() string {
	return "events"
}

////////////////////////
// SYSTEM MODELS
////////////////////////

// EnginePerformance is the model for periodic engine health snapshots.
type EnginePerformance struct {
	Time                 time.Time `json:"time" gorm:"type:timestamptz;index:idx_time"`
	MarkerCount          uint      `json:"markerCount"`
	FilteredCount        uint      `json:"filteredCount"`
	DeriveCount          uint      `json:"deriveCount"`
	SearchCount          uint      `json:"searchCount"`
	SelectionResolves    uint      `json:"selectionResolves"`
	LastDeriveDurationMs float32   `json:"lastDeriveDurationMs"`
}

func (*EnginePerformance) TableName() string {
	return "engine_performances"
}
