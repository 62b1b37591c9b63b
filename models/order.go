package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status enumeration. Admins may set any status from any other;
// there is no forward-only transition rule.
const (
	StatusNotProcess = "Not Process"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancel     = "cancel"
)

var orderStatuses = []string{
	StatusNotProcess,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancel,
}

// ValidStatus reports whether s is one of the fixed order statuses.
func ValidStatus(s string) bool {
	for _, v := range orderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// PaymentTransaction is the settled (or attempted) gateway transaction.
type PaymentTransaction struct {
	ID     string `bson:"id" json:"id"`
	Status string `bson:"status" json:"status"`
	Amount string `bson:"amount" json:"amount"`
}

// Payment embeds the gateway's reported outcome in the order document.
// Declined transactions are recorded here with Success=false rather than
// dropped; the audit trail keeps failed attempts.
type Payment struct {
	Success     bool               `bson:"success" json:"success"`
	Message     string             `bson:"message,omitempty" json:"message,omitempty"`
	Transaction PaymentTransaction `bson:"transaction" json:"transaction"`
}

type Order struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Products  []primitive.ObjectID `bson:"products" json:"products"`
	Payment   Payment              `bson:"payment" json:"payment"`
	Buyer     primitive.ObjectID   `bson:"buyer" json:"buyer"`
	Status    string               `bson:"status" json:"status"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
