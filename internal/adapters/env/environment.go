package env

import (
	"errors"
	"fmt"
	"os"

	"github.com/bnema/pfconn/internal/ports"
	"github.com/subosito/gotenv"
)

// Environment resolves variables from the process environment first and a
// dotenv file second. Process values are never overridden by the file.
type Environment struct {
	lookup func(string) (string, bool)
	dotenv gotenv.Env
}

var _ ports.Environment = (*Environment)(nil)

// Load reads the dotenv file at path. An empty path or a missing file yields
// an environment backed by the process only.
func Load(path string) (*Environment, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Environment, error) {
	environment := &Environment{lookup: lookup, dotenv: gotenv.Env{}}
	if path == "" {
		return environment, nil
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return environment, nil
		}
		return nil, fmt.Errorf("stat dotenv file: %w", err)
	}

	values, err := gotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read dotenv file %s: %w", path, err)
	}
	environment.dotenv = values

	return environment, nil
}

func (e *Environment) Lookup(key string) (string, bool) {
	if value, ok := e.lookup(key); ok {
		return value, true
	}

	value, ok := e.dotenv[key]
	return value, ok
}

// Static is an Environment over a fixed set of values.
type Static map[string]string

var _ ports.Environment = Static(nil)

func (s Static) Lookup(key string) (string, bool) {
	value, ok := s[key]
	return value, ok
}
