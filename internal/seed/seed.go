// Package seed pre-populates a user store from a YAML file at startup.
package seed

import (
	"errors"
	"fmt"
	"os"

	"github.com/celerix-dev/celerix-users/internal/store"
	"github.com/celerix-dev/celerix-users/internal/validate"
	"github.com/celerix-dev/celerix-users/pkg/schema"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSeed is returned when the seed file cannot be decoded.
var ErrInvalidSeed = errors.New("invalid seed file")

// File is the on-disk layout of a seed file.
type File struct {
	Users []schema.UserFields `yaml:"users"`
}

// Loader adds seed users to a store, applying the same rules as the create form.
type Loader struct {
	Store     store.UserStore
	Validator *validate.Validator
	Log       *zap.Logger
}

// LoadFile reads path and seeds the store from it. It returns the number of
// users added.
func (l *Loader) LoadFile(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	return l.Load(content)
}

// Load seeds the store from YAML content. Users that fail validation are
// skipped with a warning rather than aborting the whole seed.
func (l *Loader) Load(content []byte) (int, error) {
	var f File
	if err := yaml.Unmarshal(content, &f); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	added := 0
	for i, u := range f.Users {
		fields, errs := l.Validator.User(u)
		if len(errs) > 0 {
			l.Log.Warn("skipping invalid seed user",
				zap.Int("index", i),
				zap.String("email", u.Email),
				zap.Any("errors", errs),
			)
			continue
		}
		l.Store.Add(fields)
		added++
	}
	return added, nil
}
