package palette

import (
	"fmt"
	"os/exec"
	"strings"
)

// DetectBackend returns the first palette backend found in PATH, in the order
// of Names.
func DetectBackend() (string, error) {
	for _, name := range Names {
		if _, err := exec.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette backend found in PATH (looked for: %s)", strings.Join(Names, ", "))
}
