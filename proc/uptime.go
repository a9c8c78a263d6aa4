package proc

import (
	"fmt"
	"os"
)

// ReadUptime returns the system uptime in seconds, 0 on failure.
func ReadUptime(root string) float64 {
	f, err := os.Open(root + "/uptime")
	if err != nil {
		return 0
	}
	defer f.Close()

	var up float64
	fmt.Fscan(f, &up)
	return up
}
