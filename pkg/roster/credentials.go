package roster

import (
	"sync"

	"github.com/minerguide/pilotd/pkg/pilotdb/model"
)

// keyCredentials is the live form of a stored API key. Every pilot owned by
// the key shares one value, so a new verification code reaches all of them.
type keyCredentials struct {
	id int

	mu    sync.RWMutex
	vcode string
}

func newKeyCredentials(key *model.APIKey) *keyCredentials {
	return &keyCredentials{id: key.KeyID(), vcode: key.Verification()}
}

func (k *keyCredentials) KeyID() int {
	return k.id
}

func (k *keyCredentials) Verification() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.vcode
}

func (k *keyCredentials) setVerification(vcode string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.vcode = vcode
}
