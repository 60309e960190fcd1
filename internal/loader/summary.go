package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/datakit/wefarm/schema"
)

// LoadClassifySummary reads a classification run summary written by the
// classify command or by an external run of another strategy.
func LoadClassifySummary(path string) (schema.ClassifySummary, error) {
	var summary schema.ClassifySummary
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return summary, &MissingInputError{Path: path, Prerequisite: "wefarm classify"}
		}
		return summary, fmt.Errorf("read classify summary: %w", err)
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		return summary, fmt.Errorf("parse classify summary %s: %w", path, err)
	}
	return summary, nil
}
