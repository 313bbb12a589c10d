package database

import (
	"time"
)

type Story struct {
	URL      string
	Title    string
	Summary  string
	PostedAt *time.Time // NULL for rows written before posted_at existed
}
