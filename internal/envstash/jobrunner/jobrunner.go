// Package jobrunner ties envstash to the batch scheduler: it identifies
// the scheduler instance this process runs inside, picks instance-local
// scratch storage, and execs the user workload with the provisioned
// environment activated.
package jobrunner

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"envstash/pkg/errors"
	"envstash/pkg/logger"
	"envstash/pkg/platform"
)

// Scheduler identifies the batch system the current process runs under.
type Scheduler string

const (
	SchedulerSlurm Scheduler = "slurm"
	SchedulerPBS   Scheduler = "pbs"
	SchedulerLSF   Scheduler = "lsf"
	SchedulerNone  Scheduler = "none"
)

// Instance identifies one scheduler-managed run of envstash. Array jobs
// get a distinct instance per task so their logs and scratch dirs never
// collide.
type Instance struct {
	ID        string
	Scheduler Scheduler
	JobID     string
	TaskID    string
}

// DetectScheduler inspects the environment the scheduler injected into
// the job.
func DetectScheduler(p platform.Platform) Scheduler {
	switch {
	case p.Getenv("SLURM_JOB_ID") != "":
		return SchedulerSlurm
	case p.Getenv("PBS_JOBID") != "":
		return SchedulerPBS
	case p.Getenv("LSB_JOBID") != "":
		return SchedulerLSF
	}
	return SchedulerNone
}

// NewInstance derives the instance identity from scheduler environment
// variables. Outside any scheduler (local runs, CI) the identity is a
// random UUID.
func NewInstance(p platform.Platform) *Instance {
	sched := DetectScheduler(p)

	inst := &Instance{Scheduler: sched}
	switch sched {
	case SchedulerSlurm:
		inst.JobID = p.Getenv("SLURM_JOB_ID")
		inst.TaskID = p.Getenv("SLURM_ARRAY_TASK_ID")
	case SchedulerPBS:
		inst.JobID = p.Getenv("PBS_JOBID")
		inst.TaskID = p.Getenv("PBS_ARRAY_INDEX")
	case SchedulerLSF:
		inst.JobID = p.Getenv("LSB_JOBID")
		inst.TaskID = p.Getenv("LSB_JOBINDEX")
	}

	if inst.JobID == "" {
		inst.ID = uuid.New().String()
		return inst
	}

	inst.ID = string(sched) + "-" + inst.JobID
	if inst.TaskID != "" {
		inst.ID += "." + inst.TaskID
	}
	return inst
}

// ScratchDir picks the instance-local ephemeral directory. Schedulers
// that provide per-job scratch advertise it through TMPDIR-style
// variables; /tmp is the last resort.
func ScratchDir(p platform.Platform) string {
	for _, key := range []string{"SLURM_TMPDIR", "TMPDIR", "SCRATCH"} {
		if dir := p.Getenv(key); dir != "" {
			return dir
		}
	}
	return "/tmp"
}

// Runner execs a user workload with a provisioned environment activated.
type Runner struct {
	platform platform.Platform
	logger   *logger.Logger
}

func NewRunner(p platform.Platform) *Runner {
	return &Runner{
		platform: p,
		logger:   logger.New().WithField("component", "jobrunner"),
	}
}

// Run replaces the current process with the workload command, with the
// environment prefix activated: prefix/bin leads PATH and
// ENVSTASH_PREFIX names the prefix. Does not return on success.
func (r *Runner) Run(prefix string, argv []string) error {
	if len(argv) == 0 {
		return errors.WrapConfigError("jobrunner", "command",
			fmt.Errorf("%w: no workload command given", errors.ErrInvalidConfig))
	}

	binDir := filepath.Join(prefix, "bin")
	if !r.platform.DirExists(binDir) {
		return errors.WrapConfigError("jobrunner", "prefix",
			fmt.Errorf("%w: %s is not a provisioned environment", errors.ErrInvalidConfig, prefix))
	}

	env := activatedEnviron(r.platform.Environ(), prefix, binDir)

	argv0 := argv[0]
	if resolved, err := r.platform.LookPath(filepath.Join(binDir, argv0)); err == nil {
		argv0 = resolved
	} else if resolved, err := r.platform.LookPath(argv0); err == nil {
		argv0 = resolved
	} else {
		return fmt.Errorf("%w: %q not found in environment or PATH", errors.ErrExecFailed, argv[0])
	}

	r.logger.Info("executing workload", "command", argv0, "prefix", prefix)
	if err := r.platform.Exec(argv0, argv, env); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrExecFailed, err)
	}
	return nil
}

// activatedEnviron rewrites the process environment for the activated
// prefix.
func activatedEnviron(environ []string, prefix, binDir string) []string {
	env := make([]string, 0, len(environ)+2)
	var sawPath bool
	for _, kv := range environ {
		if len(kv) >= 5 && kv[:5] == "PATH=" {
			env = append(env, "PATH="+binDir+":"+kv[5:])
			sawPath = true
			continue
		}
		env = append(env, kv)
	}
	if !sawPath {
		env = append(env, "PATH="+binDir)
	}
	env = append(env, "ENVSTASH_PREFIX="+prefix)
	return env
}
