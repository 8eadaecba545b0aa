package domain

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

func AcceptedImageType(mimeType string) bool {
	_, ok := imageExtensions[mimeType]
	return ok
}

// ImageExtension returns the storage extension for an accepted image mime
// type and "" otherwise.
func ImageExtension(mimeType string) string {
	return imageExtensions[mimeType]
}
