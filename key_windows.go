//go:build windows

package regwatch

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

var hiveRoots = map[Hive]registry.Key{
	ClassesRoot:     registry.CLASSES_ROOT,
	CurrentUser:     registry.CURRENT_USER,
	LocalMachine:    registry.LOCAL_MACHINE,
	Users:           registry.USERS,
	CurrentConfig:   registry.CURRENT_CONFIG,
	PerformanceData: registry.PERFORMANCE_DATA,
}

// RegistryKey adapts an open registry.Key to the Key interface.
type RegistryKey struct {
	key registry.Key
}

// NewKey wraps an already open key. The key must have been opened with registry.NOTIFY access.
func NewKey(key registry.Key) *RegistryKey {
	return &RegistryKey{key: key}
}

// OpenKey opens the key at a path such as `HKLM\SOFTWARE\Microsoft` with notify access.
func OpenKey(path string) (Key, error) {
	hive, subPath, err := ParseKeyPath(path)
	if err != nil {
		return nil, err
	}
	key, err := registry.OpenKey(hiveRoots[hive], subPath, registry.NOTIFY|registry.QUERY_VALUE)
	if err != nil {
		return nil, fmt.Errorf("error opening registry key %q: %w", path, err)
	}
	return NewKey(key), nil
}

// Raw returns the underlying registry key.
func (k *RegistryKey) Raw() registry.Key {
	return k.key
}

func (k *RegistryKey) Watch(filter Filter, watchSubtree bool, timeout Timeout) (Response, error) {
	return Watch(k.key, filter, watchSubtree, timeout)
}

func (k *RegistryKey) Close() error {
	return k.key.Close()
}
