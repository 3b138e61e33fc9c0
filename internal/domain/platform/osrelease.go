// Package platform reads host OS release metadata and decides whether the
// host is a supported installation target.
package platform

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// DefaultOSReleasePath is where systemd-era distributions publish release metadata.
const DefaultOSReleasePath = "/etc/os-release"

// Descriptor holds facts about the host read from os-release.
type Descriptor struct {
	ID         string // e.g. "ubuntu"
	VersionID  string // e.g. "22.04"
	Codename   string // e.g. "jammy"
	PrettyName string // e.g. "Ubuntu 22.04.3 LTS"
}

// String returns a human-readable description.
func (d Descriptor) String() string {
	if d.PrettyName != "" {
		return d.PrettyName
	}
	return strings.TrimSpace(d.ID + " " + d.VersionID)
}

// ParseOSRelease parses os-release KEY=value content.
// Quoted values are unquoted. VERSION_CODENAME falls back to UBUNTU_CODENAME.
func ParseOSRelease(data []byte) (Descriptor, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return Descriptor{}, fmt.Errorf("parse os-release: %w", err)
	}

	section := cfg.Section(ini.DefaultSection)
	d := Descriptor{
		ID:         strings.ToLower(section.Key("ID").String()),
		VersionID:  section.Key("VERSION_ID").String(),
		Codename:   section.Key("VERSION_CODENAME").String(),
		PrettyName: section.Key("PRETTY_NAME").String(),
	}
	if d.Codename == "" {
		d.Codename = section.Key("UBUNTU_CODENAME").String()
	}
	if d.ID == "" {
		return Descriptor{}, fmt.Errorf("parse os-release: missing ID")
	}
	return d, nil
}
