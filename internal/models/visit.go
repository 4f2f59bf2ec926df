package models

import "time"

type SiteVisit struct {
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Page      string    `bson:"page" json:"page"`
}
