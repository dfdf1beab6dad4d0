//go:build !windows

package regwatch

// OpenKey validates path but always fails with ErrUnsupported, as only windows has a registry.
func OpenKey(path string) (Key, error) {
	if _, _, err := ParseKeyPath(path); err != nil {
		return nil, err
	}
	return nil, ErrUnsupported
}
