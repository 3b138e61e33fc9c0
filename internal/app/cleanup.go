package app

import (
	"strings"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// PartialStateHook reports what was left applied when a run stops early.
// Nothing is rolled back.
func PartialStateHook(ctx pipeline.RunContext, report pipeline.Report) {
	log := ctx.Logger()
	c := ctx.Context()

	log.Debug(c, "run finished",
		ports.F("outcome", string(report.Outcome())),
		ports.F("duration", report.Duration().String()))

	if !report.PartiallyApplied() {
		return
	}

	applied := make([]string, 0)
	for _, res := range report.Completed() {
		if res.Mutates() {
			applied = append(applied, res.Describe())
		}
	}
	log.Warn(c, "The host is partially configured. Completed: "+strings.Join(applied, ", "))
	log.Info(c, "No changes were rolled back. Fix the problem above and run the installer again.")
}
