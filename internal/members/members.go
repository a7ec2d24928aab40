// Package members holds the static membership allow-list and the profile
// fields attached to each code.
package members

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"ticket-fulfillment/internal/domain"
)

// Registry is a read-only lookup of member profiles keyed by the normalized
// membership code.
type Registry struct {
	profiles map[string]domain.MemberProfile
}

// NewRegistry builds a registry from a profile list. Codes are normalized
// the same way incoming codes are (trim + lower-case).
func NewRegistry(profiles []domain.MemberProfile) *Registry {
	m := make(map[string]domain.MemberProfile, len(profiles))
	for _, p := range profiles {
		m[Normalize(p.Code)] = p
	}
	return &Registry{profiles: m}
}

// Load reads a profile list from a JSON file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read members file %s", path)
	}
	var profiles []domain.MemberProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, errors.Wrapf(err, "parse members file %s", path)
	}
	return NewRegistry(profiles), nil
}

// Seed returns the built-in member list used when no members file is
// configured.
func Seed() *Registry {
	return NewRegistry([]domain.MemberProfile{
		{Code: "12345", Name: "Nguyễn Văn An", Club: "Gold"},
		{Code: "54321", Name: "Trần Thị Bình", Club: "Silver"},
	})
}

// Verify checks a caller-supplied membership code against the allow-list
// and returns the attached profile when the code is valid.
func (r *Registry) Verify(code string) (domain.MemberProfile, bool) {
	p, ok := r.profiles[Normalize(code)]
	return p, ok
}

// Normalize trims and case-folds a membership code.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
