package models

import (
	"time"
)

// FavouriteTrack is a track a user saved for later playback.
// A user cannot favourite the same URL twice; the (user_id, url) pair is
// unique at the store level.
type FavouriteTrack struct {
	ID       int64     `db:"id"`
	UserID   int64     `db:"user_id"`
	Title    *string   `db:"title"`
	URL      string    `db:"url"`
	Duration *string   `db:"duration"`
	Uploader *string   `db:"uploader"`
	AddedIn  time.Time `db:"added_in"`
}

// FavouritePlaylist is a playlist a user saved for later playback.
// Count is the number of tracks in the playlist, at least 1.
type FavouritePlaylist struct {
	ID       int64     `db:"id"`
	UserID   int64     `db:"user_id"`
	Title    *string   `db:"title"`
	URL      string    `db:"url"`
	Count    int       `db:"count"`
	Uploader *string   `db:"uploader"`
	AddedIn  time.Time `db:"added_in"`
}
