package regwatch

import (
	"fmt"
	"strings"
)

// Filter is a bitmask of the registry change categories that trigger a notification. It is passed to the
// operating system verbatim, so bits not named here are preserved rather than rejected.
type Filter uint32

const (
	// ChangeName notifies when a subkey is added or deleted.
	ChangeName = Filter(0x00000001)
	// ChangeAttributes notifies when attributes of the key change, such as its security descriptor information.
	ChangeAttributes = Filter(0x00000002)
	// ChangeLastSet notifies when a value of the key is added, deleted or modified.
	ChangeLastSet = Filter(0x00000004)
	// ChangeSecurity notifies when the security descriptor of the key changes.
	ChangeSecurity = Filter(0x00000008)
	// ThreadAgnostic keeps the registration alive independently of the thread that armed it.
	ThreadAgnostic = Filter(0x10000000)

	// LegalChangeFilter combines every change category plus the thread agnostic modifier.
	LegalChangeFilter = ChangeName | ChangeAttributes | ChangeLastSet | ChangeSecurity | ThreadAgnostic
)

var filterNames = []struct {
	name string
	bit  Filter
}{
	{"name", ChangeName},
	{"attributes", ChangeAttributes},
	{"last-set", ChangeLastSet},
	{"security", ChangeSecurity},
	{"thread-agnostic", ThreadAgnostic},
}

// ParseFilter builds a filter from names such as "name", "last-set" or "all". Names are case-insensitive
// and may also be given comma separated within a single argument.
func ParseFilter(names ...string) (Filter, error) {
	var filter Filter
	for _, arg := range names {
		for _, name := range strings.Split(arg, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			if name == "all" {
				filter |= LegalChangeFilter
				continue
			}
			bit, ok := lookupFilter(name)
			if !ok {
				return 0, fmt.Errorf("unknown filter %q", name)
			}
			filter |= bit
		}
	}
	return filter, nil
}

func lookupFilter(name string) (Filter, bool) {
	for _, entry := range filterNames {
		if entry.name == name {
			return entry.bit, true
		}
	}
	return 0, false
}

func (f Filter) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	rest := f
	for _, entry := range filterNames {
		if f&entry.bit != 0 {
			parts = append(parts, entry.name)
			rest &^= entry.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}
