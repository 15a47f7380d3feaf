package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Flashes(t *testing.T) {
	sess := &Session{}
	sess.AddFlash("Image uploaded successfully!", "success")
	sess.AddFlash("No image uploaded!", "danger")

	flashes := sess.PopFlashes()
	assert.Equal(t, []Flash{
		{Message: "Image uploaded successfully!", Category: "success"},
		{Message: "No image uploaded!", Category: "danger"},
	}, flashes)

	// Popping empties the queue.
	assert.Empty(t, sess.PopFlashes())
}

func TestSession_AuthenticatedOnlyWithIdentity(t *testing.T) {
	sess := &Session{UploadedImage: "mole.jpg"}
	assert.False(t, sess.Authenticated())

	sess.UserID = "u1"
	assert.True(t, sess.Authenticated())
}
