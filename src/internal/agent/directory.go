package agent

import (
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rinq/userstore-go/src/internal/x/glob"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// User is a user in a Directory.
type User struct {
	Name         string            `yaml:"name"`
	PasswordHash string            `yaml:"password_hash"`
	Attributes   map[string]string `yaml:"attributes"`
	Groups       []string          `yaml:"groups"`
}

// Directory is a fixed set of users and roles that the agent answers from.
type Directory struct {
	Users []User   `yaml:"users"`
	Roles []string `yaml:"roles"`
}

// LoadDirectory reads a YAML directory fixture from r.
func LoadDirectory(r io.Reader) (*Directory, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Directory
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}

	return &d, nil
}

// LoadDirectoryFile reads a YAML directory fixture from the file at path.
func LoadDirectoryFile(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadDirectory(f)
}

// Authenticate returns true if password matches the credential hash of the
// named user.
func (d *Directory) Authenticate(name, password string) bool {
	u, ok := d.user(name)
	if !ok {
		return false
	}

	return bcrypt.CompareHashAndPassword(
		[]byte(u.PasswordHash),
		[]byte(password),
	) == nil
}

// Attributes returns the named attributes of the named user. If names is
// empty every attribute is returned. An unknown user has no attributes.
func (d *Directory) Attributes(name string, names []string) map[string]string {
	attrs := map[string]string{}

	u, ok := d.user(name)
	if !ok {
		return attrs
	}

	if len(names) == 0 {
		for k, v := range u.Attributes {
			attrs[k] = v
		}

		return attrs
	}

	for _, n := range names {
		if v, ok := u.Attributes[n]; ok {
			attrs[n] = v
		}
	}

	return attrs
}

// UserNames returns the names of the users that match filter, in order. At
// most limit names are returned, unless limit is zero or negative.
func (d *Directory) UserNames(filter string, limit int) []string {
	names := make([]string, len(d.Users))
	for i, u := range d.Users {
		names[i] = u.Name
	}

	return limitNames(glob.Filter(filter, names), limit)
}

// RoleNames returns the names of the roles that match filter, in order. Roles
// assigned to users are included even if they are not listed separately.
func (d *Directory) RoleNames(filter string, limit int) []string {
	seen := map[string]struct{}{}
	var names []string

	add := func(r string) {
		if _, ok := seen[r]; !ok {
			seen[r] = struct{}{}
			names = append(names, r)
		}
	}

	for _, r := range d.Roles {
		add(r)
	}

	var assigned []string
	for _, u := range d.Users {
		assigned = append(assigned, u.Groups...)
	}
	sort.Strings(assigned)

	for _, r := range assigned {
		add(r)
	}

	return limitNames(glob.Filter(filter, names), limit)
}

// Groups returns the roles of the named user.
func (d *Directory) Groups(name string) []string {
	u, ok := d.user(name)
	if !ok {
		return []string{}
	}

	return append([]string{}, u.Groups...)
}

func (d *Directory) user(name string) (User, bool) {
	for _, u := range d.Users {
		if u.Name == name {
			return u, true
		}
	}

	return User{}, false
}

// parseLimit parses the limit field of a list request. Invalid limits are
// treated as "no limit".
func parseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}

	return n
}

// parseNames splits a comma-separated attribute list.
func parseNames(s string) []string {
	var names []string

	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	return names
}

func limitNames(names []string, limit int) []string {
	if limit > 0 && len(names) > limit {
		return names[:limit]
	}

	return names
}
