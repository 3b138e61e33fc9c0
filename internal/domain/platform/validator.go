package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// Validator checks that the host runs a supported distribution at or above
// a minimum version.
type Validator struct {
	id         pipeline.StageID
	fs         ports.FileSystem
	path       string
	distro     string
	minimum    Version
	descriptor Descriptor
}

// NewValidator creates a Validator reading os-release from path.
func NewValidator(fs ports.FileSystem, path, distro string, minimum Version) *Validator {
	return &Validator{
		id:      pipeline.MustNewStageID("platform:validate"),
		fs:      fs,
		path:    path,
		distro:  strings.ToLower(distro),
		minimum: minimum,
	}
}

// ID returns the stage identifier.
func (v *Validator) ID() pipeline.StageID {
	return v.id
}

// Describe returns the stage label.
func (v *Validator) Describe() string {
	return "validate platform"
}

// Run reads and checks the host's release metadata.
func (v *Validator) Run(ctx pipeline.RunContext) error {
	data, err := v.fs.ReadFile(v.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || !v.fs.Exists(v.path) {
			return pipeline.NewStageError(pipeline.ErrCodeOSReleaseMissing,
				fmt.Sprintf("cannot determine OS: %s not found", v.path)).
				WithUnderlying(err)
		}
		return pipeline.NewStageError(pipeline.ErrCodeOSReleaseMissing,
			fmt.Sprintf("cannot read %s", v.path)).
			WithUnderlying(err)
	}

	d, err := ParseOSRelease(data)
	if err != nil {
		return pipeline.NewStageError(pipeline.ErrCodeOSReleaseMissing, "cannot determine OS").
			WithUnderlying(err)
	}

	if d.ID != v.distro {
		return pipeline.NewStageError(pipeline.ErrCodePlatformUnsupported,
			fmt.Sprintf("unsupported distribution %q: only %s is supported", d.ID, v.distro)).
			WithSuggestion("Use the upstream install instructions for your distribution.")
	}

	version, err := ParseVersion(d.VersionID)
	if err != nil {
		return pipeline.NewStageError(pipeline.ErrCodePlatformVersionInvalid,
			fmt.Sprintf("cannot parse %s version %q", v.distro, d.VersionID)).
			WithUnderlying(err)
	}

	if !version.AtLeast(v.minimum) {
		return pipeline.NewStageError(pipeline.ErrCodePlatformTooOld,
			fmt.Sprintf("%s %s is not supported: %s or newer is required", v.distro, d.VersionID, v.minimum)).
			WithSuggestion(fmt.Sprintf("Upgrade the host to %s %s or newer.", v.distro, v.minimum))
	}

	v.descriptor = d

	ctx.Logger().Info(ctx.Context(),
		fmt.Sprintf("Detected %s %s (%s)", d.ID, d.VersionID, d.Codename),
		ports.F("pretty_name", d.PrettyName))
	return nil
}

// Descriptor returns the validated host descriptor.
// It is the zero value until Run succeeds.
func (v *Validator) Descriptor() Descriptor {
	return v.descriptor
}

// Ensure Validator implements pipeline.Stage.
var _ pipeline.Stage = (*Validator)(nil)
