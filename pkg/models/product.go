package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	ImageURL    string             `bson:"image_url" json:"image_url"`
	Category    string             `bson:"category" json:"category"`
	Stock       int32              `bson:"stock" json:"stock"`
	Rating      float64            `bson:"rating" json:"rating"`
	Reviews     []Review           `bson:"reviews" json:"reviews"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type Review struct {
	User    string    `bson:"user" json:"user"`
	Comment string    `bson:"comment" json:"comment"`
	Rating  float64   `bson:"rating" json:"rating"`
	Date    time.Time `bson:"date" json:"date"`
}
