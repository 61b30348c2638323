package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvFileFlagName = "env-file"
	envFileEnvVar   = "ENV_FILE"
	defaultEnvFile  = ".env"
)

// LoadEnvFile loads environment variables from a dotenv file and returns the path it loaded, if any.
// The file is picked from the --env-file flag in args, then the ENV_FILE variable, then ./.env.
// Only a missing ./.env is tolerated.
func LoadEnvFile(args []string) (string, error) {
	path := envFileFromArgs(args)
	if path == "" {
		path = os.Getenv(envFileEnvVar)
	}

	if path == "" {
		err := godotenv.Load(defaultEnvFile)
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("loading %s file: %w", defaultEnvFile, err)
		}
		return defaultEnvFile, nil
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := godotenv.Load(path); err != nil {
		return "", fmt.Errorf("loading env file %s: %w", path, err)
	}
	return path, nil
}

func envFileFromArgs(args []string) string {
	flag := "--" + EnvFileFlagName
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
		if value, ok := strings.CutPrefix(arg, flag+"="); ok {
			return value
		}
	}
	return ""
}
