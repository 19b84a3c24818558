package models

import "time"

// QueryLog is the audit record stored for every resolved lookup.
type QueryLog struct {
	Sender     string    `bson:"sender" json:"sender"`
	RawMessage string    `bson:"raw_message" json:"raw_message"`
	Keyword    string    `bson:"keyword" json:"keyword"`
	Matches    int       `bson:"matches" json:"matches"`
	Page       int       `bson:"page" json:"page"`
	Suggested  string    `bson:"suggested,omitempty" json:"suggested,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
