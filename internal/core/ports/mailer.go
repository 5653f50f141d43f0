package ports

// Mailer sends transactional mail. Implementations must be safe for
// concurrent use; callers treat delivery as best effort.
type Mailer interface {
	SendWelcome(to, name string) error
}
