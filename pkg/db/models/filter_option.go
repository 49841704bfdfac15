package models

import "github.com/google/uuid"

// Ambiance, Color and Material form the filter taxonomies shown on category
// pages. Products reference them by display name, matching the source data,
// so the tables are lookup lists rather than foreign-key targets.

type Ambiance struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"column:name;not null;uniqueIndex"`
}

type Color struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name    string    `gorm:"column:name;not null;uniqueIndex"`
	HexCode string    `gorm:"column:hex_code;not null;default:''"`
}

type Material struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"column:name;not null;uniqueIndex"`
}
