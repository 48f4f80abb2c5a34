package gamedata

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/signadot/cfgpatch/debug"
)

const (
	EnvEnv = "CFGPATCH_ENV"
)

// LoadEnv decodes $CFGPATCH_ENV, a YAML object, if set.
func LoadEnv() (map[string]any, error) {
	envEnv := os.Getenv(EnvEnv)
	if envEnv == "" {
		return nil, nil
	}
	var env map[string]any
	if err := yaml.Unmarshal([]byte(envEnv), &env); err != nil {
		return nil, fmt.Errorf("error decoding env $%s: %w", EnvEnv, err)
	}
	if debug.Load() {
		debug.Logf("\nloaded env from env: %v\n", env)
	}
	return env, nil
}

// ParseEnvArg parses "key=value", decoding value as YAML.
func ParseEnvArg(arg string) (string, any, error) {
	k, v, ok := strings.Cut(arg, "=")
	if !ok || k == "" {
		return "", nil, fmt.Errorf("env argument %q is not key=value", arg)
	}
	var val any
	if err := yaml.Unmarshal([]byte(v), &val); err != nil {
		return "", nil, fmt.Errorf("error decoding value of %s: %w", k, err)
	}
	return k, val, nil
}
