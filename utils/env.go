package utils

import (
	"fmt"
	"os"
)

// ToString - Basic type conversion functions
func ToString(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprintf("%v", val), true
	}
}

type GetEnvFn func(v string, defaultVal ...any) string

// Getenv reads an environment variable, falling back to the first default.
// Tests may swap it out.
var Getenv GetEnvFn

func getenv(v string, defaultVal ...any) string {
	val := os.Getenv(v)
	if val != "" {
		return val
	}
	if len(defaultVal) > 0 && defaultVal[0] != nil {
		val, _ := ToString(defaultVal[0])
		return val
	}
	return ""
}

func init() {
	Getenv = getenv
}
