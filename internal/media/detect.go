package media

import "strings"

var audioExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// IsAudioExt returns true if the extension is a playable audio format.
func IsAudioExt(ext string) bool {
	return audioExts[strings.ToLower(ext)]
}

// IsImageExt returns true if the extension is a decodable image format.
func IsImageExt(ext string) bool {
	return imageExts[strings.ToLower(ext)]
}

// IsCardExt returns true if a file with this extension can become a card.
func IsCardExt(ext string) bool {
	return IsAudioExt(ext) || IsImageExt(ext)
}

// SupportedExtsList returns a human-readable list of card source formats.
func SupportedExtsList() string {
	return ".mp3, .wav, .flac, .ogg, .jpg, .jpeg, .png"
}
