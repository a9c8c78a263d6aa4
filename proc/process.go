package proc

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"
)

// ReadComm reads the short command name from /proc/<pid>/comm.
func ReadComm(root string, pid int) (string, error) {
	data, err := os.ReadFile(fmt.Sprintf("%s/%d/comm", root, pid))
	if err != nil {
		return "", err
	}
	name := strings.TrimRight(string(data), "\n")
	if name == "" {
		return "", fmt.Errorf("empty comm for pid %d", pid)
	}
	return name, nil
}

// UIDToName resolves a UID to a username, falling back to the numeric
// id when the lookup fails.
func UIDToName(uid uint32) string {
	u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return strconv.FormatUint(uint64(uid), 10)
	}
	return u.Username
}

// IsNumeric reports whether s is a non-empty run of ASCII digits.
// Numeric directory names under /proc denote live pids.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
