package mumhash

import "unsafe"

// stringBytes views s as a byte slice. The result must not be written to.
func stringBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
