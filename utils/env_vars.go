package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type envTypes interface {
	~string | ~int | ~bool | ~float64
}

// GetEnv reads the environment variable envVarName, converted to T.
// It returns defaultValue when the variable is absent or empty, and panics
// when the value cannot be converted: a malformed deployment should fail
// loudly at startup.
func GetEnv[T envTypes](envVarName string, defaultValue T) T {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		return defaultValue
	}
	parsed, err := parseEnv[T](envVarName, envValue)
	if err != nil {
		panic(err)
	}
	return parsed
}

func GetRequiredEnv[T envTypes](envVarName string) T {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		log.Fatalf("%s environment variable is required", envVarName)
	}
	parsed, err := parseEnv[T](envVarName, envValue)
	if err != nil {
		log.Fatal(err)
	}
	return parsed
}

func parseEnv[T envTypes](envVarName, envValue string) (T, error) {
	var out T
	switch any(out).(type) {
	case string:
		return any(envValue).(T), nil
	case int:
		intValue, err := strconv.Atoi(envValue)
		if err != nil {
			return out, fmt.Errorf("environment variable %s: '%s' is not an integer", envVarName, envValue)
		}
		return any(intValue).(T), nil
	case bool:
		boolValue, err := strconv.ParseBool(envValue)
		if err != nil {
			return out, fmt.Errorf("environment variable %s: '%s' is not a boolean", envVarName, envValue)
		}
		return any(boolValue).(T), nil
	case float64:
		floatValue, err := strconv.ParseFloat(envValue, 64)
		if err != nil {
			return out, fmt.Errorf("environment variable %s: '%s' is not a number", envVarName, envValue)
		}
		return any(floatValue).(T), nil
	}
	return out, fmt.Errorf("environment variable %s: unsupported type", envVarName)
}
