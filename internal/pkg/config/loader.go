// Package config reads optional process settings from the environment with
// a fail-open policy: a malformed or out-of-range value never stops a
// process, it falls back to the default and reports a warning.
//
// The API's required settings live in internal/config; this package serves
// the optional tuning knobs (worker schedules, pool sizes, page sizes).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Result is a value read from the environment.
type Result[T any] struct {
	Value T
	// Warning explains why the default was used. Empty when FallbackApplied
	// is false.
	Warning         string
	FallbackApplied bool
}

// Load reads key, converts it with parse and checks it with validate.
// An unset or blank variable yields def without a warning. validate may be nil.
func Load[T any](key string, def T, parse func(string) (T, error), validate func(T) error) Result[T] {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return Result[T]{Value: def}
	}
	v, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(v)
	}
	if err != nil {
		return Result[T]{
			Value:           def,
			Warning:         fmt.Sprintf("invalid %s=%q: %v, falling back to default %v", key, raw, err, def),
			FallbackApplied: true,
		}
	}
	return Result[T]{Value: v}
}

func parseString(s string) (string, error) { return s, nil }

// LoadString reads a string setting.
func LoadString(key, def string, validate func(string) error) Result[string] {
	return Load(key, def, parseString, validate)
}

// LoadInt reads a base-10 integer setting.
func LoadInt(key string, def int, validate func(int) error) Result[int] {
	return Load(key, def, strconv.Atoi, validate)
}

// LoadDuration reads a setting in time.ParseDuration syntax ("30m", "1h30m").
func LoadDuration(key string, def time.Duration, validate func(time.Duration) error) Result[time.Duration] {
	return Load(key, def, time.ParseDuration, validate)
}

// LoadBool reads a setting in strconv.ParseBool syntax.
func LoadBool(key string, def bool) Result[bool] {
	return Load(key, def, strconv.ParseBool, nil)
}
