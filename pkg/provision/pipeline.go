package provision

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jaspreet-dot-casa/bootstrap/pkg/config"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/imds"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/logging"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/summary"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/system"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/verify"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/webpage"
)

// Pipeline wires the provisioning steps to the host. Construct one per
// run; the run ID ties log lines and the completion summary together.
type Pipeline struct {
	cfg    *config.Config
	logger *logrus.Logger
	policy *Policy
	runID  string

	packages *system.PackageManager
	service  *system.ServiceManager
	files    *system.FileOwner
	metadata *imds.Client
	checker  *verify.Checker

	hostname func() (string, error)
	now      func() time.Time
	sleep    func(context.Context, time.Duration)
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithExecutor replaces the command executor behind the package,
// service, and file managers (for testing).
func WithExecutor(exec system.CommandExecutor) PipelineOption {
	return func(p *Pipeline) {
		p.packages = system.NewPackageManagerWithExecutor(exec)
		p.service = system.NewServiceManagerWithExecutor(exec, p.cfg.ServiceName)
		p.files = system.NewFileOwnerWithExecutor(exec)
	}
}

// WithMetadataClient replaces the IMDS client (for testing).
func WithMetadataClient(client *imds.Client) PipelineOption {
	return func(p *Pipeline) { p.metadata = client }
}

// WithChecker replaces the verification checker (for testing).
func WithChecker(checker *verify.Checker) PipelineOption {
	return func(p *Pipeline) { p.checker = checker }
}

// WithHostname replaces hostname lookup (for testing).
func WithHostname(fn func() (string, error)) PipelineOption {
	return func(p *Pipeline) { p.hostname = fn }
}

// WithClock replaces the time source (for testing).
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) { p.now = now }
}

// WithNoDelay removes the wait before verification (for testing).
func WithNoDelay() PipelineOption {
	return func(p *Pipeline) { p.sleep = func(context.Context, time.Duration) {} }
}

// NewPipeline creates a Pipeline against the real host.
func NewPipeline(cfg *config.Config, logger *logrus.Logger, opts ...PipelineOption) (*Pipeline, error) {
	policy, err := DefaultPolicy()
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:    cfg,
		logger: logger,
		policy: policy,
		runID:  uuid.NewString(),

		packages: system.NewPackageManager(),
		service:  system.NewServiceManager(cfg.ServiceName),
		files:    system.NewFileOwner(),
		metadata: imds.NewClient(
			imds.WithBaseURL(cfg.IMDSBaseURL),
			imds.WithTokenTTL(cfg.TokenTTL),
			imds.WithTimeout(cfg.IMDSTimeout),
		),
		checker: verify.NewChecker(cfg.VerifyURL, cfg.VerifyTimeout),

		hostname: os.Hostname,
		now:      time.Now,
		sleep:    wait,
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// RunID returns the identifier of this provisioning run.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Minimal installs and starts the web server and writes the one-line
// page with the machine's hostname.
func (p *Pipeline) Minimal(ctx context.Context) ([]Result, error) {
	p.logger.WithField("run_id", p.runID).Info("starting minimal provisioning")

	runner := NewRunner(p.logger, p.policy)
	err := runner.Run(
		p.stepUpdate(ctx),
		p.stepInstall(ctx),
		p.stepStart(ctx),
		p.stepEnable(ctx),
		Step{
			ID:   IDWritePage,
			Name: fmt.Sprintf("write %s", p.cfg.IndexPath()),
			Run: func() error {
				host, hostErr := p.hostname()
				if hostErr != nil {
					return fmt.Errorf("failed to determine hostname: %w", hostErr)
				}
				vars := &webpage.TemplateVars{HOSTNAME: host}
				return webpage.Write(webpage.MinimalTemplate, vars, p.cfg.IndexPath())
			},
		},
	)
	return runner.Results(), err
}

// Full runs the verbose pipeline: provisioning, metadata collection,
// status page rendering, ownership fixes, restart, verification, and
// the completion summary.
func (p *Pipeline) Full(ctx context.Context) ([]Result, error) {
	p.logger.WithField("run_id", p.runID).Info("starting full provisioning")

	runner := NewRunner(p.logger, p.policy)

	var identity imds.Identity

	err := runner.Run(
		p.stepUpdate(ctx),
		p.stepInstall(ctx),
		p.stepStart(ctx),
		p.stepEnable(ctx),
		Step{
			ID:   IDCollectMeta,
			Name: "collect instance metadata",
			Run: func() error {
				identity = p.metadata.Identity(ctx)
				if !identity.Complete() {
					return errors.New("one or more metadata attributes unavailable")
				}
				return nil
			},
		},
		Step{
			ID:   IDRenderPage,
			Name: fmt.Sprintf("render %s", p.cfg.IndexPath()),
			Run: func() error {
				vars := webpage.VarsFromIdentity(identity, p.now())
				return webpage.Write(webpage.StatusTemplate, vars, p.cfg.IndexPath())
			},
		},
		Step{
			ID:   IDSetOwnership,
			Name: fmt.Sprintf("chown %s %s", p.cfg.Owner, p.cfg.WebRoot),
			Run: func() error {
				return p.files.Chown(ctx, p.cfg.WebRoot, p.cfg.Owner)
			},
		},
		Step{
			ID:   IDSetPermissions,
			Name: fmt.Sprintf("chmod %o %s", p.cfg.FileMode, p.cfg.WebRoot),
			Run: func() error {
				return p.files.Chmod(ctx, p.cfg.WebRoot, fs.FileMode(p.cfg.FileMode))
			},
		},
		Step{
			ID:   IDRestartService,
			Name: fmt.Sprintf("restart %s", p.cfg.ServiceName),
			Run:  func() error { return p.service.Restart(ctx) },
		},
	)
	if err != nil {
		return runner.Results(), err
	}

	p.logger.Infof("waiting %s before verification", p.cfg.VerifyDelay)
	p.sleep(ctx, p.cfg.VerifyDelay)

	// Verification and bookkeeping are all advisory; the run has already
	// succeeded as far as the exit code is concerned.
	_ = runner.Run(
		Step{
			ID:   IDVerifyStatus,
			Name: "verify HTTP status",
			Run:  func() error { return checkErr(p.checker.StatusCheck(ctx)) },
		},
		Step{
			ID:   IDVerifyContent,
			Name: fmt.Sprintf("verify page contains %q", p.cfg.FullMark),
			Run:  func() error { return checkErr(p.checker.ContentCheck(ctx, p.cfg.FullMark)) },
		},
	)

	_ = runner.Run(
		Step{
			ID:   IDWriteSummary,
			Name: fmt.Sprintf("write %s", p.cfg.SummaryPath),
			Run: func() error {
				failed := FailedStepIDs(runner.Results())
				status := "ok"
				if len(failed) > 0 {
					status = "degraded"
				}
				return summary.Write(p.cfg.SummaryPath, summary.Summary{
					RunID:       p.runID,
					CompletedAt: p.now(),
					InstanceID:  identity.InstanceID,
					Status:      status,
					FailedSteps: failed,
				})
			},
		},
		Step{
			ID:   IDRelaxLogPerms,
			Name: fmt.Sprintf("make %s world-readable", p.cfg.LogPath),
			Run:  func() error { return logging.Relax(p.cfg.LogPath) },
		},
	)

	return runner.Results(), nil
}

func (p *Pipeline) stepUpdate(ctx context.Context) Step {
	return Step{
		ID:   IDUpdatePackages,
		Name: "update system packages",
		Run:  func() error { return p.packages.Update(ctx) },
	}
}

func (p *Pipeline) stepInstall(ctx context.Context) Step {
	return Step{
		ID:   IDInstallPackage,
		Name: fmt.Sprintf("install %s", p.cfg.PackageName),
		Run:  func() error { return p.packages.Install(ctx, p.cfg.PackageName) },
	}
}

func (p *Pipeline) stepStart(ctx context.Context) Step {
	return Step{
		ID:   IDStartService,
		Name: fmt.Sprintf("start %s", p.cfg.ServiceName),
		Run:  func() error { return p.service.Start(ctx) },
	}
}

func (p *Pipeline) stepEnable(ctx context.Context) Step {
	return Step{
		ID:   IDEnableService,
		Name: fmt.Sprintf("enable %s", p.cfg.ServiceName),
		Run:  func() error { return p.service.Enable(ctx) },
	}
}

// checkErr converts a verification check into a step error.
func checkErr(check verify.Check) error {
	if check.Status == verify.StatusOK {
		return nil
	}
	return fmt.Errorf("%s: %s", check.Name, check.Message)
}

// wait sleeps for d or until ctx is cancelled.
func wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
