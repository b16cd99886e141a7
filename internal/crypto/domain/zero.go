package domain

// Zero wipes key material in place. The engine calls it on every copy of the
// transfer key it read from the vault once the copy is no longer needed.
func Zero(b []byte) {
	clear(b)
}
