// Package service contains business logic for the application.
package service

import "fanvault/internal/models"

// CanViewMedia decides whether viewer may see the media attached to post.
// Public posts are visible to everyone, including anonymous visitors.
// Locked posts require an active subscription; the creator always sees
// their own catalog. Post text is never gated, only the media reference.
func CanViewMedia(post *models.Post, viewer *models.User) bool {
	if post.IsPublic {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.IsSubscribed || viewer.IsCreator()
}

// RedactMedia blanks the media reference when viewer may not see it and
// marks the post locked. Every read path returns posts through here so the
// URL of gated media never leaves the server.
func RedactMedia(post *models.Post, viewer *models.User) {
	if CanViewMedia(post, viewer) {
		return
	}
	post.MediaURL = ""
	post.MediaLocked = true
}

// RedactMediaAll applies RedactMedia across a page of posts.
func RedactMediaAll(posts []*models.Post, viewer *models.User) {
	for _, p := range posts {
		RedactMedia(p, viewer)
	}
}

// canEngage reports whether user may create likes and comments. Unsubscribed
// members are deliberately treated as silent no-ops by the callers, not
// rejected with an error.
func canEngage(user *models.User) bool {
	return user != nil && (user.IsSubscribed || user.IsCreator())
}
