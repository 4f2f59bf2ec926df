package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const SponsorLogoEntity = "sponsor_logo"

// SponsorSlots is the number of logo slots rendered on the public site.
const SponsorSlots = 3

// SponsorLogo is one slot-keyed logo image, stored as a data URL.
type SponsorLogo struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slot      int                `bson:"slot" json:"slot"`
	Logo      string             `bson:"logo" json:"logo"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
