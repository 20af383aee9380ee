package env

import (
	"log"

	"github.com/joho/godotenv"
)

// Env holds the values of the loaded .env file. LoadConfig prefers them over
// the process environment.
var Env map[string]string

// Searched from the working directory and from cmd/stripe-api.
var defaultEnvFiles = []string{".env", "../../.env", "../../../.env"}

// SetupEnvFile reads the first readable file of paths, or of the default
// locations when none are given, into Env and returns its path. Containers
// usually inject the environment directly, so a missing file is only logged.
func SetupEnvFile(paths ...string) string {
	if len(paths) == 0 {
		paths = defaultEnvFiles
	}

	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			continue
		}
		Env = values
		return path
	}

	Env = map[string]string{}
	log.Printf("No .env file found, using process environment only")
	return ""
}
