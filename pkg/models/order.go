package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const OrderStatusPending = "Pending"

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items           []OrderLine        `bson:"items" json:"items"`
	TotalAmount     float64            `bson:"total_amount" json:"total_amount"`
	ShippingAddress string             `bson:"shipping_address" json:"shipping_address"`
	PaymentMethod   string             `bson:"payment_method" json:"payment_method"`
	Status          string             `bson:"status" json:"status"`
	OrderDate       time.Time          `bson:"order_date" json:"order_date"`
}

// OrderLine is an immutable snapshot of a cart line at order-creation time.
// Name, image and price stay fixed even if the product changes later.
type OrderLine struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	ImageURL  string             `bson:"image_url" json:"image_url"`
	Quantity  int32              `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}
