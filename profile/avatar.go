package profile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const avatarSize = 256

// AvatarURLPrefix is where the router serves the avatar directory.
const AvatarURLPrefix = "/static/userpic/"

// SaveAvatar decodes an uploaded image, crops it to a square thumbnail and
// stores it as JPEG under dir. It returns the public path of the file.
func SaveAvatar(dir string, src io.Reader) (string, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	fileName := uuid.NewString() + ".jpg"
	thumb := imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(dir, fileName), imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to save avatar: %w", err)
	}
	return AvatarURLPrefix + fileName, nil
}
