package testutil

import (
	"fmt"

	"sage/models"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(userID int64, displayName string) *models.User {
	return &models.User{
		UserID:      userID,
		DisplayName: displayName,
	}
}

// CreateTestGuild creates a test guild with default values
func CreateTestGuild(guildID int64, guildName string) *models.Guild {
	return &models.Guild{
		GuildID:   guildID,
		GuildName: guildName,
	}
}

// CreateTestTrack creates a favourite track for a user
func CreateTestTrack(userID int64, url string) *models.FavouriteTrack {
	title := fmt.Sprintf("track %s", url)
	duration := "3:45"
	uploader := "test uploader"
	return &models.FavouriteTrack{
		UserID:   userID,
		Title:    &title,
		URL:      url,
		Duration: &duration,
		Uploader: &uploader,
	}
}

// CreateTestPlaylist creates a favourite playlist for a user
func CreateTestPlaylist(userID int64, url string, count int) *models.FavouritePlaylist {
	title := fmt.Sprintf("playlist %s", url)
	uploader := "test uploader"
	return &models.FavouritePlaylist{
		UserID:   userID,
		Title:    &title,
		URL:      url,
		Count:    count,
		Uploader: &uploader,
	}
}
