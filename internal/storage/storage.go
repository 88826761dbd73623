package storage

import "path"

// BlobStore abstracts where audio inputs and synthesized outputs live.
// Paths are forward-slash relative references, never absolute.
type BlobStore interface {
	Write(name string, data []byte) error
	Read(name string) ([]byte, error)
	Exists(name string) bool
}

// AudioPath namespaces an uploaded source audio file per user.
func AudioPath(userID, name string) string {
	return path.Join("transcriptions", "audio", userOrDefault(userID), name)
}

// OutputPath namespaces a generated output file per user.
func OutputPath(userID, name string) string {
	return path.Join("transcriptions", "output", userOrDefault(userID), name)
}

func userOrDefault(userID string) string {
	if userID == "" {
		return "default"
	}
	return userID
}
