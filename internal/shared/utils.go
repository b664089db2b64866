package shared

import (
	"github.com/gin-gonic/gin"
)

// ParseBoolFilter parses a boolean query parameter and returns a pointer to
// bool or nil when absent or malformed.
func ParseBoolFilter(c *gin.Context, name string) *bool {
	value := c.Query(name)
	if value == "" {
		return nil
	}

	switch value {
	case "true":
		return boolPtr(true)
	case "false":
		return boolPtr(false)
	default:
		return nil
	}
}

func boolPtr(b bool) *bool {
	return &b
}
