package env

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"fixbridge/internal/application/port/output"
)

var _ output.ConfigPort = (*EnvService)(nil)

type EnvService struct {
	// fallback holds values from a config file; the process environment wins.
	fallback map[string]string
}

func NewEnvService() *EnvService {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Info: no .env file found (this is OK)")
	}

	envFile := fmt.Sprintf(".env.%s", appEnv)
	if err := godotenv.Overload(envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load %s: %v", envFile, err)
	}

	return &EnvService{fallback: map[string]string{}}
}

// NewStaticEnvService reads only from values, ignoring the process environment.
func NewStaticEnvService(values map[string]string) *StaticEnv {
	return &StaticEnv{values: values}
}

// WithFile layers the key/values of a YAML config file beneath the environment.
func (e *EnvService) WithFile(path string) (*EnvService, error) {
	values, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]string, len(e.fallback)+len(values))
	for k, v := range e.fallback {
		merged[k] = v
	}
	for k, v := range values {
		merged[k] = v
	}
	return &EnvService{fallback: merged}, nil
}

func (e *EnvService) Get(key string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return e.fallback[key]
}

func (e *EnvService) MustGet(key string) string {
	val := e.Get(key)
	if val == "" {
		log.Fatalf("ENV %s is missing", key)
	}
	return val
}

func (e *EnvService) GetWithDefault(key string, defaultValue string) string {
	return withDefault(e.Get(key), defaultValue)
}

func (e *EnvService) GetBool(key string, defaultValue bool) bool {
	return parseBool(e.Get(key), defaultValue)
}

func (e *EnvService) GetInt(key string, defaultValue int) int {
	return parseInt(e.Get(key), defaultValue)
}

var _ output.ConfigPort = (*StaticEnv)(nil)

type StaticEnv struct {
	values map[string]string
}

func (s *StaticEnv) Get(key string) string {
	return s.values[key]
}

func (s *StaticEnv) MustGet(key string) string {
	val := s.values[key]
	if val == "" {
		log.Fatalf("ENV %s is missing", key)
	}
	return val
}

func (s *StaticEnv) GetWithDefault(key string, defaultValue string) string {
	return withDefault(s.Get(key), defaultValue)
}

func (s *StaticEnv) GetBool(key string, defaultValue bool) bool {
	return parseBool(s.Get(key), defaultValue)
}

func (s *StaticEnv) GetInt(key string, defaultValue int) int {
	return parseInt(s.Get(key), defaultValue)
}

func withDefault(val, defaultValue string) string {
	if val == "" {
		return defaultValue
	}
	return val
}

func parseBool(val string, defaultValue bool) bool {
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseInt(val string, defaultValue int) int {
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
