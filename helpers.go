package vestaboard

import (
	"fmt"
	"os"
)

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vestaboard: read rows file: %w", err)
	}
	return data, nil
}
