package models

import "time"

// NewsletterSubscription stores a lowercase-normalized subscriber email.
type NewsletterSubscription struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	SubscribedAt time.Time `gorm:"column:subscribed_at;autoCreateTime"`
}
