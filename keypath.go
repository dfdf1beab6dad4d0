package regwatch

import (
	"fmt"
	"strings"
)

// Hive names a predefined registry root key.
type Hive string

const (
	ClassesRoot     = Hive("HKCR")
	CurrentUser     = Hive("HKCU")
	LocalMachine    = Hive("HKLM")
	Users           = Hive("HKU")
	CurrentConfig   = Hive("HKCC")
	PerformanceData = Hive("HKPD")
)

var hiveAliases = map[string]Hive{
	"HKCR":                  ClassesRoot,
	"HKEY_CLASSES_ROOT":     ClassesRoot,
	"HKCU":                  CurrentUser,
	"HKEY_CURRENT_USER":     CurrentUser,
	"HKLM":                  LocalMachine,
	"HKEY_LOCAL_MACHINE":    LocalMachine,
	"HKU":                   Users,
	"HKEY_USERS":            Users,
	"HKCC":                  CurrentConfig,
	"HKEY_CURRENT_CONFIG":   CurrentConfig,
	"HKPD":                  PerformanceData,
	"HKEY_PERFORMANCE_DATA": PerformanceData,
}

// ParseKeyPath splits a path such as `HKLM\SOFTWARE\Microsoft` into its hive and a normalized sub-path.
// Forward slashes are accepted as separators and the hive name may be abbreviated or spelled out.
func ParseKeyPath(path string) (Hive, string, error) {
	normalized := normalizeKeyPath(path)
	if normalized == "" {
		return "", "", fmt.Errorf("empty registry key path")
	}

	hiveName, subPath, _ := strings.Cut(normalized, `\`)
	hive, ok := hiveAliases[strings.ToUpper(hiveName)]
	if !ok {
		return "", "", fmt.Errorf("unknown registry hive %q in %q", hiveName, path)
	}
	return hive, subPath, nil
}

// normalizeKeyPath converts separators to backslashes, drops empty segments and trims leading and trailing
// separators.
func normalizeKeyPath(path string) string {
	segments := strings.FieldsFunc(strings.TrimSpace(path), func(r rune) bool {
		return r == '\\' || r == '/'
	})
	return strings.Join(segments, `\`)
}
