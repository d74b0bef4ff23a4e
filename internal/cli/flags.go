package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"eol-check/internal/adapters"
	"eol-check/internal/app"
	"eol-check/internal/types"
)

type sourceOptions struct {
	URL              string
	File             string
	CacheDir         string
	CacheTTL         time.Duration
	NoCache          bool
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

func addSourceFlags(cmd *cobra.Command, opts *sourceOptions) {
	cmd.Flags().StringVar(&opts.URL, "eol-url", adapters.DefaultEOLURL, "URL of the endoflife.json document")
	cmd.Flags().StringVar(&opts.File, "eol-file", "", "Read endoflife.json from a local file instead of downloading it")
	cmd.Flags().StringVar(&opts.CacheDir, "cache-dir", "", "Cache directory for downloaded EOL data (default: user cache dir)")
	cmd.Flags().DurationVar(&opts.CacheTTL, "cache-ttl", adapters.DefaultCacheTTL, "How long downloaded EOL data is reused (0 disables the cache)")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Always download EOL data")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout", 60, "HTTP timeout in seconds")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 3, "HTTP retries after the first EOL download attempt (0 disables retries)")
	cmd.Flags().IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay-ms", 200, "Base delay between HTTP retries in milliseconds")

	_ = viper.BindPFlag("eol_url", cmd.Flags().Lookup("eol-url"))
	_ = viper.BindPFlag("eol_file", cmd.Flags().Lookup("eol-file"))
	_ = viper.BindPFlag("cache_dir", cmd.Flags().Lookup("cache-dir"))
	_ = viper.BindPFlag("cache_ttl", cmd.Flags().Lookup("cache-ttl"))
	_ = viper.BindPFlag("no_cache", cmd.Flags().Lookup("no-cache"))
	_ = viper.BindPFlag("http_timeout", cmd.Flags().Lookup("http-timeout"))
	_ = viper.BindPFlag("http_retries", cmd.Flags().Lookup("http-retries"))
	_ = viper.BindPFlag("http_retry_delay_ms", cmd.Flags().Lookup("http-retry-delay-ms"))
}

func resolveSourceRequest(cmd *cobra.Command, opts sourceOptions) app.SourceRequest {
	return app.SourceRequest{
		URL:              resolveString(cmd, opts.URL, "eol_url", "eol-url"),
		File:             resolveString(cmd, opts.File, "eol_file", "eol-file"),
		CacheDir:         resolveString(cmd, opts.CacheDir, "cache_dir", "cache-dir"),
		CacheTTL:         resolveDuration(cmd, opts.CacheTTL, "cache_ttl", "cache-ttl"),
		NoCache:          resolveBool(cmd, opts.NoCache, "no_cache", "no-cache"),
		HTTPTimeoutSec:   resolveInt(cmd, opts.HTTPTimeoutSec, "http_timeout", "http-timeout"),
		HTTPRetries:      resolveInt(cmd, opts.HTTPRetries, "http_retries", "http-retries"),
		HTTPRetryDelayMs: resolveInt(cmd, opts.HTTPRetryDelayMs, "http_retry_delay_ms", "http-retry-delay-ms"),
	}
}

type targetOptions struct {
	Root       string
	Targets    []string
	IncludeDev bool
	Waivers    []string
}

func addTargetFlags(cmd *cobra.Command, opts *targetOptions) {
	cmd.Flags().StringVar(&opts.Root, "root", ".", "Project root that target paths are relative to")
	cmd.Flags().StringSliceVar(&opts.Targets, "target", nil, "Manifest to check: [name=]ecosystem:path (repeatable)")
	cmd.Flags().BoolVar(&opts.IncludeDev, "dev", false, "Include npm devDependencies")
	cmd.Flags().StringSliceVar(&opts.Waivers, "waive", nil, "Accept EOL findings matching pattern: name, prefix*, *, ecosystem:pattern")

	_ = viper.BindPFlag("root", cmd.Flags().Lookup("root"))
	_ = viper.BindPFlag("dev_dependencies", cmd.Flags().Lookup("dev"))
}

func resolveTargets(cmd *cobra.Command, opts targetOptions) ([]types.Target, error) {
	if flagChanged(cmd, "target") || (cmd == nil && len(opts.Targets) > 0) {
		targets := make([]types.Target, 0, len(opts.Targets))
		for _, raw := range opts.Targets {
			target, err := parseTargetFlag(raw)
			if err != nil {
				return nil, err
			}
			targets = append(targets, target)
		}
		return targets, nil
	}
	var targets []types.Target
	if err := viper.UnmarshalKey("targets", &targets); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid targets configuration").
			WithCause(err)
	}
	return targets, nil
}

// parseTargetFlag reads "[name=]ecosystem:path". The name defaults to
// the path.
func parseTargetFlag(raw string) (types.Target, error) {
	value := strings.TrimSpace(raw)
	name := ""
	if idx := strings.Index(value, "="); idx >= 0 {
		name = strings.TrimSpace(value[:idx])
		value = strings.TrimSpace(value[idx+1:])
	}
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return types.Target{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid target %q, expected [name=]ecosystem:path", raw))
	}
	ecosystem, ok := types.ParseEcosystem(parts[0])
	if !ok {
		return types.Target{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported ecosystem %q in target %q", parts[0], raw))
	}
	path := strings.TrimSpace(parts[1])
	if name == "" {
		name = path
	}
	return types.Target{Name: name, Ecosystem: ecosystem, Path: path}, nil
}

// resolveWaivers combines configured waivers with --waive patterns.
func resolveWaivers(patterns []string) ([]types.Waiver, error) {
	var waivers []types.Waiver
	if err := viper.UnmarshalKey("waivers", &waivers); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid waivers configuration").
			WithCause(err)
	}
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		waivers = append(waivers, types.Waiver{Match: strings.TrimSpace(pattern), Reason: "waived on command line"})
	}
	return waivers, nil
}

type checkOptions struct {
	Source     sourceOptions
	Targets    targetOptions
	Format     string
	ReportFile string
	Workers    int
}

func addCheckFlags(cmd *cobra.Command, opts *checkOptions) {
	addSourceFlags(cmd, &opts.Source)
	addTargetFlags(cmd, &opts.Targets)
	cmd.Flags().StringVar(&opts.Format, "format", string(types.OutputFormatTable), "Report format: table, json or yaml")
	cmd.Flags().StringVar(&opts.ReportFile, "report-file", "", "Also write the report to this file")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Targets processed concurrently (0 = number of CPUs)")

	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("report_file", cmd.Flags().Lookup("report-file"))
	_ = viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
}

func resolveCheckRequest(cmd *cobra.Command, opts checkOptions) (app.CheckRequest, error) {
	targets, err := resolveTargets(cmd, opts.Targets)
	if err != nil {
		return app.CheckRequest{}, err
	}
	waivers, err := resolveWaivers(opts.Targets.Waivers)
	if err != nil {
		return app.CheckRequest{}, err
	}
	return app.CheckRequest{
		Source:           resolveSourceRequest(cmd, opts.Source),
		Root:             resolveString(cmd, opts.Targets.Root, "root", "root"),
		Targets:          targets,
		IncludeDev:       resolveBool(cmd, opts.Targets.IncludeDev, "dev_dependencies", "dev"),
		Waivers:          waivers,
		FrameworkMapping: viper.GetStringMapString("mappings.spring_framework"),
		LiquibaseMapping: viper.GetStringMapString("mappings.liquibase"),
		Workers:          resolveInt(cmd, opts.Workers, "workers", "workers"),
		Format:           types.OutputFormat(resolveString(cmd, opts.Format, "format", "format")),
		ReportFile:       resolveString(cmd, opts.ReportFile, "report_file", "report-file"),
	}, nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func resolveDuration(cmd *cobra.Command, value time.Duration, key string, flagName string) time.Duration {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetDuration(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
