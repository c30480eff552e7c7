package entity

// Hashtag is a free-form text tag, globally unique by name. The unique
// index backs the conflict-safe get-or-create in the tag repository.
type Hashtag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

// VehicleType and VehicleModel form the fixed vehicle taxonomy. Models
// are never auto-created from user input.
type VehicleType struct {
	ID     uint           `gorm:"primaryKey" json:"id"`
	Name   string         `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Models []VehicleModel `gorm:"foreignKey:TypeID" json:"models,omitempty"`
}

type VehicleModel struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	TypeID uint   `gorm:"index;not null" json:"type_id"`
	Name   string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}
