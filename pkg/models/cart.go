package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int32              `bson:"quantity" json:"quantity"`
}

// ResolvedCartItem is a cart item joined with its current product document.
type ResolvedCartItem struct {
	CartItem `bson:",inline"`
	Product  Product `bson:"product" json:"product"`
}
