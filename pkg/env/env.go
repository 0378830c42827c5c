package env

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Parse fills target from environment variables described by its `env` struct tags.
func Parse(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	return nil
}

func ParseAs[T any]() (T, error) {
	var result T
	if err := Parse(&result); err != nil {
		return result, err
	}

	return result, nil
}

func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
