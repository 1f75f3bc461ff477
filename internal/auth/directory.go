package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Directory is the immutable credential table. It is seeded once at process
// start and never mutated afterwards; lookups match the stored username or
// email exactly, with no normalization.
type Directory struct {
	records []Credential
}

// NewDirectory hashes the given seed secrets and builds the directory.
// Duplicate usernames or emails are rejected at construction so runtime
// lookups never have to disambiguate.
func NewDirectory(seeds []SeedUser) (*Directory, error) {
	seen := make(map[string]struct{}, len(seeds)*2)
	records := make([]Credential, 0, len(seeds))
	for _, s := range seeds {
		if !s.Role.Valid() {
			return nil, fmt.Errorf("auth: unknown role %q for user %q", s.Role, s.Username)
		}
		for _, key := range []string{s.Username, s.Email} {
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("auth: duplicate directory entry %q", key)
			}
			seen[key] = struct{}{}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("auth: hash seed password for %q: %w", s.Username, err)
		}
		records = append(records, Credential{
			Identity: Identity{
				ID:       s.ID,
				Username: s.Username,
				Email:    s.Email,
				Role:     s.Role,
				Name:     s.Name,
				Avatar:   s.Avatar,
			},
			PasswordHash: string(hash),
		})
	}
	return &Directory{records: records}, nil
}

// SeedUser is a plaintext directory seed. The plaintext secret only exists
// during construction; the directory stores a bcrypt hash.
type SeedUser struct {
	ID       string
	Username string
	Email    string
	Password string
	Role     Role
	Name     string
	Avatar   string
}

// DefaultSeeds returns the built-in account list covering every role.
func DefaultSeeds() []SeedUser {
	return []SeedUser{
		{ID: "1", Username: "admin", Email: "admin@rag.com", Password: "admin123", Role: RoleAdmin, Name: "System Administrator", Avatar: "👨‍💼"},
		{ID: "2", Username: "editor1", Email: "editor1@rag.com", Password: "editor123", Role: RoleEditor, Name: "Content Editor", Avatar: "✍️"},
		{ID: "3", Username: "editor2", Email: "editor2@rag.com", Password: "editor456", Role: RoleEditor, Name: "Senior Editor", Avatar: "📝"},
		{ID: "4", Username: "viewer1", Email: "viewer1@rag.com", Password: "viewer123", Role: RoleViewer, Name: "Data Analyst", Avatar: "👀"},
		{ID: "5", Username: "viewer2", Email: "viewer2@rag.com", Password: "viewer456", Role: RoleViewer, Name: "Auditor", Avatar: "🔍"},
	}
}

// FindByLogin returns the credential whose username or email equals login.
func (d *Directory) FindByLogin(login string) (Credential, bool) {
	for _, rec := range d.records {
		if rec.Username == login || rec.Email == login {
			return rec, true
		}
	}
	return Credential{}, false
}

// FindByID returns the credential with the given identity ID.
func (d *Directory) FindByID(id string) (Credential, bool) {
	for _, rec := range d.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return Credential{}, false
}

// Identities returns the public attributes of every directory entry.
func (d *Directory) Identities() []Identity {
	out := make([]Identity, 0, len(d.records))
	for _, rec := range d.records {
		out = append(out, rec.Identity)
	}
	return out
}
