package display

import (
	"encoding/json"
	"os"
)

// MarshalJSON marshals JSON with pretty formatting for humans and compact
// formatting when DEP5_JSON_COMPACT is set (for piping into other tools)
func MarshalJSON(v interface{}) ([]byte, error) {
	if os.Getenv("DEP5_JSON_COMPACT") != "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
