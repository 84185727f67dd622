package bot

import "sync/atomic"

// Identity holds the display name of the connected bot user. It is written
// once the gateway is ready and read concurrently by the health endpoint.
type Identity struct {
	name atomic.Pointer[string]
}

func (i *Identity) Set(name string) {
	i.name.Store(&name)
}

// Name returns "None" until the gateway reports ready.
func (i *Identity) Name() string {
	if p := i.name.Load(); p != nil {
		return *p
	}
	return "None"
}
