package config

import (
	"fmt"
	"sort"
	"strings"
)

// Required collects the names of mandatory settings that resolved to empty values.
type Required map[string]string

func (r Required) Check() error {
	var missing []string
	for name, v := range r {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("missing required env %s", strings.Join(missing, ", "))
}
