package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product mirrors the catalog collection. The catalog is owned by
// another part of the system; the order engine only reads it (item
// lookups and the active-product count on the summary report).
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductCode string             `bson:"product_code" json:"productCode"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Sizes       []ProductSize      `bson:"sizes" json:"sizes"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

type ProductSize struct {
	Size      string `bson:"size" json:"size"`
	Stock     int    `bson:"stock" json:"stock"`
	Available bool   `bson:"available" json:"available"`
}
