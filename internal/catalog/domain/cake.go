package domain

import "context"

// Cake represents a catalog product
type Cake struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Title    string  `json:"title" gorm:"not null"`
	Image    string  `json:"image"`
	Category string  `json:"category" gorm:"not null;index"`
	Price    float64 `json:"price" gorm:"not null"`
}

// TableName specifies the table name for GORM
func (Cake) TableName() string {
	return "cakes"
}

// CakeView is a cake annotated with whether the viewer has favorited it
type CakeView struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Liked    bool    `json:"liked"`
}

// CakeSummary is the projection used by favorites and cart listings
type CakeSummary struct {
	ID    uint    `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// CakeRepository defines read access to the catalog
type CakeRepository interface {
	FindByCategory(ctx context.Context, category string) ([]Cake, error)
	// FindForViewer lists cakes, optionally filtered by category, annotated for viewerID.
	// A nil viewerID yields liked=false for every cake.
	FindForViewer(ctx context.Context, category string, viewerID *uint) ([]CakeView, error)
}
