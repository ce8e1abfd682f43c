// Package envvar exposes typed lookups of configuration stored in environment variables.
package envvar

import (
	"os"
	"strconv"
	"time"
)

// get looks up varName and parses it, returning the zero value and false if the variable is unset or fails to parse.
func get[T any](varName string, parse func(string) (T, error)) (T, bool) {
	env, ok := os.LookupEnv(varName)
	if !ok {
		return *new(T), false
	}

	val, err := parse(env)
	if err != nil {
		return *new(T), false
	}

	return val, true
}

// GetInt returns the int value of the environment variable varName, if the variable is unset or not an int it returns
// 0, false.
func GetInt(varName string) (int, bool) {
	return get(varName, strconv.Atoi)
}

// GetFloat64 returns the float64 value of the environment variable varName, if the variable is unset or not a number it
// returns 0, false.
func GetFloat64(varName string) (float64, bool) {
	return get(varName, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// GetBool returns the boolean value of the environment variable varName, if the variable is unset or not a boolean it
// returns false, false.
func GetBool(varName string) (bool, bool) {
	return get(varName, strconv.ParseBool)
}

// GetDuration returns the time.Duration value of the environment variable varName, if the variable is unset or not a
// valid duration string it returns 0, false.
func GetDuration(varName string) (time.Duration, bool) {
	return get(varName, time.ParseDuration)
}
