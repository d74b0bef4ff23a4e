package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"

	"eol-check/internal/adapters"
	"eol-check/internal/ports"
)

type Service struct {
	POMParser    ports.POMPort
	Requirements ports.ManifestPort
	AptLock      ports.ManifestPort
	Reports      ports.ReportWriterPort
	Runner       ports.CommandRunnerPort
	Workflows    ports.WorkflowWriterPort
	CacheFs      afero.Fs
	// EOLSource replaces the configured HTTP/file source when set.
	EOLSource ports.EOLSourcePort
	Stdout    io.Writer
	Stderr    io.Writer
	Clock     func() time.Time
	// Wait blocks for d or until ctx is done.
	Wait func(ctx context.Context, d time.Duration) error
}

func NewService() Service {
	return Service{
		POMParser:    adapters.NewPOMAdapter(),
		Requirements: adapters.NewRequirementsAdapter(),
		AptLock:      adapters.NewAptLockAdapter(),
		Reports:      adapters.NewReportWriter(),
		Runner:       adapters.NewExecCommandRunner(),
		Workflows:    adapters.NewWorkflowFileAdapter(),
		CacheFs:      afero.NewOsFs(),
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Clock:        time.Now,
		Wait:         waitContext,
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

func (s Service) stdout() io.Writer {
	if s.Stdout == nil {
		return os.Stdout
	}
	return s.Stdout
}

func (s Service) stderr() io.Writer {
	if s.Stderr == nil {
		return os.Stderr
	}
	return s.Stderr
}

func (s Service) wait(ctx context.Context, d time.Duration) error {
	if s.Wait == nil {
		return waitContext(ctx, d)
	}
	return s.Wait(ctx, d)
}

func waitContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
