package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/provider/docker"
	"github.com/felixgeelhaar/dockerup/internal/tui/ui"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DocsURL points to the post-installation guide.
const DocsURL = "https://docs.docker.com/engine/install/linux-postinstall/"

// ReportStage prints the final summary. It never fails.
type ReportStage struct {
	id        pipeline.StageID
	runner    ports.CommandRunner
	extractor docker.VersionExtractor
	out       io.Writer
	styles    ui.Styles
	steps     []string
}

// NewReportStage creates a ReportStage listing steps as completed.
func NewReportStage(runner ports.CommandRunner, extractor docker.VersionExtractor, out io.Writer, styles ui.Styles, steps []string) *ReportStage {
	return &ReportStage{
		id:        pipeline.MustNewStageID("report:summary"),
		runner:    runner,
		extractor: extractor,
		out:       out,
		styles:    styles,
		steps:     steps,
	}
}

// ID returns the stage identifier.
func (s *ReportStage) ID() pipeline.StageID {
	return s.id
}

// Describe returns the stage label.
func (s *ReportStage) Describe() string {
	return "print summary"
}

// Run re-queries versions and renders the summary.
func (s *ReportStage) Run(ctx pipeline.RunContext) error {
	versions := docker.QueryVersions(ctx.Context(), s.runner, s.extractor)
	fmt.Fprintln(s.out, RenderSummary(s.styles, versions, s.steps))
	ctx.Logger().Success(ctx.Context(), "Docker installation complete")
	return nil
}

// RenderSummary renders the post-install summary panel.
func RenderSummary(styles ui.Styles, versions docker.Versions, steps []string) string {
	title := cases.Title(language.English)
	var b strings.Builder

	b.WriteString(styles.PanelTitle.Render("Installation summary"))
	b.WriteString("\n\n")

	row := func(k, v string) {
		b.WriteString(styles.Key.Render(fmt.Sprintf("%-16s", k)))
		b.WriteString(styles.Value.Render(v))
		b.WriteString("\n")
	}
	row("Docker Engine", versions.Engine)
	row("Docker Compose", versions.Compose)

	if len(steps) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Key.Render("Completed"))
		b.WriteString("\n")
		for _, step := range steps {
			b.WriteString("  ✓ " + title.String(step) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Key.Render("Next steps"))
	b.WriteString("\n")
	next := []struct{ text, cmd string }{
		{"Log out and back in, or activate the group now:", "newgrp docker"},
		{"Run a container without sudo:", "docker run hello-world"},
		{"Check the Compose plugin:", "docker compose version"},
	}
	for i, n := range next {
		fmt.Fprintf(&b, "  %d. %s %s\n", i+1, n.text, styles.Choice.Render(n.cmd))
	}
	b.WriteString("\n")
	b.WriteString(styles.Help.Render("Docs: " + DocsURL))

	return styles.Panel.Render(b.String())
}

var _ pipeline.Stage = (*ReportStage)(nil)
