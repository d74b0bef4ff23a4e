package app

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"eol-check/internal/core"
	"eol-check/internal/policies"
	"eol-check/internal/ports"
	"eol-check/internal/types"
)

// EOLFoundMessage marks the error returned by Check when at least one
// un-waived dependency is past end-of-life.
const EOLFoundMessage = "end-of-life dependencies found"

func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	logger := log.Ctx(ctx)
	format, ok := types.ParseOutputFormat(string(req.Format))
	if !ok {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported report format %q", req.Format))
	}
	targets, err := resolveTargets(req.Root, req.Targets)
	if err != nil {
		return CheckResult{}, err
	}
	today := s.now().UTC()
	var policy ports.PolicyPort = policies.NewWaiverPolicy(req.Waivers, today)
	if err := policy.Validate(); err != nil {
		return CheckResult{}, err
	}

	source := s.eolSource(ctx, req.Source)
	data, err := source.Load(ctx)
	if err != nil {
		return CheckResult{}, err
	}
	catalog := core.NewCatalog(data)
	logger.Debug().Int("products", catalog.Len()).Str("source", source.Describe()).Msg("EOL catalog loaded")

	deriver := core.NewMavenDeriver(
		core.DefaultSpringFrameworkMapping().Merge(req.FrameworkMapping),
		core.DefaultLiquibaseMapping().Merge(req.LiquibaseMapping),
	)
	classifier := core.NewClassifier(catalog, today)

	reports := make([]types.TargetReport, len(targets))
	present := make([]bool, len(targets))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workerLimit(req.Workers))
	for i, resolved := range targets {
		i, resolved := i, resolved
		group.Go(func() error {
			target := resolved.target
			if resolved.optional && !manifestExists(target.Path) {
				logger.Warn().Str("target", target.Name).Str("path", target.Path).Msg("manifest not found, skipping")
				return nil
			}
			deps, err := s.collectDependencies(groupCtx, target, req.IncludeDev, deriver, catalog)
			if err != nil {
				return err
			}
			if err := groupCtx.Err(); err != nil {
				return err
			}
			report := policy.Apply(classifier.ClassifyAll(groupCtx, target, deps))
			logger.Debug().
				Str("target", target.Name).
				Int("eol", len(report.EOL)).
				Int("up_to_date", len(report.UpToDate)).
				Int("unchecked", len(report.Unchecked)).
				Int("waived", len(report.Waived)).
				Msg("target classified")
			reports[i] = report
			present[i] = true
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return CheckResult{}, err
	}

	report := types.Report{GeneratedAt: s.now().UTC(), Source: source.Describe()}
	for i, targetReport := range reports {
		if present[i] {
			report.Targets = append(report.Targets, targetReport)
		}
	}
	if len(report.Targets) == 0 {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no dependency manifests found")
	}

	if err := s.Reports.WriteReport(s.stdout(), report, format); err != nil {
		return CheckResult{}, err
	}
	if reportFile := strings.TrimSpace(req.ReportFile); reportFile != "" {
		if err := s.Reports.WriteReportFile(reportFile, report, format); err != nil {
			return CheckResult{}, err
		}
		logger.Info().Str("path", reportFile).Msg("report written")
	}

	result := CheckResult{Report: report, EOLCount: report.EOLCount()}
	for _, target := range report.Targets {
		result.WaivedCount += len(target.Waived)
	}
	if report.HasEOL() {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(EOLFoundMessage).
			WithCause(fmt.Errorf("%d end-of-life dependencies", result.EOLCount))
	}
	return result, nil
}

func workerLimit(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.NumCPU()
}
