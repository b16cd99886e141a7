package domain

// SecretKey is the process-wide symmetric key used for every transfer.
//
// It is created once, persisted through the vault under Name and never rotated
// automatically; replacing it would make every blob sealed under the old key
// undecryptable.
type SecretKey struct {
	Name string
	Key  []byte
}

// Valid reports whether the key material has the expected length.
func (k *SecretKey) Valid() bool {
	return k != nil && len(k.Key) == KeySize
}

// Close zeroes the key material.
func (k *SecretKey) Close() {
	if k == nil {
		return
	}
	Zero(k.Key)
}
