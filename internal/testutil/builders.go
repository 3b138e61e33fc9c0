package testutil

import (
	"fmt"
	"strings"
)

// OSReleaseBuilder builds /etc/os-release content.
type OSReleaseBuilder struct {
	fields [][2]string
}

// NewOSRelease creates a builder for an Ubuntu release.
func NewOSRelease(versionID, codename string) *OSReleaseBuilder {
	return (&OSReleaseBuilder{}).
		With("NAME", "Ubuntu").
		With("ID", "ubuntu").
		With("ID_LIKE", "debian").
		With("VERSION_ID", versionID).
		With("VERSION_CODENAME", codename).
		With("PRETTY_NAME", strings.TrimSpace("Ubuntu "+versionID))
}

// With sets key, replacing an earlier value.
func (b *OSReleaseBuilder) With(key, value string) *OSReleaseBuilder {
	for i := range b.fields {
		if b.fields[i][0] == key {
			b.fields[i][1] = value
			return b
		}
	}
	b.fields = append(b.fields, [2]string{key, value})
	return b
}

// Without drops key.
func (b *OSReleaseBuilder) Without(key string) *OSReleaseBuilder {
	kept := b.fields[:0]
	for _, f := range b.fields {
		if f[0] != key {
			kept = append(kept, f)
		}
	}
	b.fields = kept
	return b
}

// Build renders the file. Values are quoted the way Ubuntu ships them.
func (b *OSReleaseBuilder) Build() string {
	var sb strings.Builder
	for _, f := range b.fields {
		switch f[0] {
		case "ID", "ID_LIKE", "VERSION_CODENAME", "UBUNTU_CODENAME":
			fmt.Fprintf(&sb, "%s=%s\n", f[0], f[1])
		default:
			fmt.Fprintf(&sb, "%s=%q\n", f[0], f[1])
		}
	}
	return sb.String()
}
