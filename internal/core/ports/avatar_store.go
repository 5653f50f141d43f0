package ports

import "io"

// AvatarStore persists uploaded profile pictures and returns the public path
// the file is served under.
type AvatarStore interface {
	Save(userID, filename string, file io.Reader) (string, error)
}
