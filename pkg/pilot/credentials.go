package pilot

// Credentials authorize API requests for a pilot. Implementations may be
// shared between pilots and changed by their owner; a pilot only reads them
// when it builds a request.
type Credentials interface {
	KeyID() int
	Verification() string
}

// APIKey is a plain key id / verification code pair.
type APIKey struct {
	ID    int
	VCode string
}

func (k APIKey) KeyID() int {
	return k.ID
}

func (k APIKey) Verification() string {
	return k.VCode
}
