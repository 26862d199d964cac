package registrar

import (
	"context"

	apperrors "github.com/kbukum/healthreg/errors"
	"github.com/kbukum/healthreg/healthcheck"
	"github.com/kbukum/healthreg/logger"
	"github.com/kbukum/healthreg/observability"
)

// Step submits one check to a backend.
type Step struct {
	CheckID string
	Run     func(ctx context.Context) error
}

// Policy decides what a failed step means for the rest of the batch.
type Policy int

const (
	// FailFast stops at the first failed step and returns its error.
	FailFast Policy = iota
	// BestEffort logs failed steps as warnings and runs every step.
	BestEffort
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case BestEffort:
		return "best-effort"
	}
	return "unknown"
}

// Failure is a step that did not complete.
type Failure struct {
	CheckID string
	Err     error
}

// Result reports the outcome of one run against one backend.
type Result struct {
	Backend healthcheck.Backend
	// Source names the definition source the checks came from, empty when
	// none was found.
	Source    string
	Succeeded []string
	Failed    []Failure
	// Skipped lists checks never attempted because an earlier one failed.
	Skipped []string
}

// Attempted returns the number of steps that ran.
func (r Result) Attempted() int {
	return len(r.Succeeded) + len(r.Failed)
}

// wrapFunc turns a step error into the error kind of the run.
type wrapFunc func(backend, checkID string, cause error) *apperrors.AppError

// reduce runs steps in order and folds their outcomes into res under policy.
func reduce(ctx context.Context, rc *observability.RunContext, steps []Step, policy Policy, wrap wrapFunc, res *Result, log *logger.Logger) error {
	backend := res.Backend.DisplayName()
	for i, step := range steps {
		err := rc.TrackCheck(ctx, step.CheckID, step.Run)
		if err == nil {
			res.Succeeded = append(res.Succeeded, step.CheckID)
			continue
		}

		appErr := wrap(backend, step.CheckID, err)
		res.Failed = append(res.Failed, Failure{CheckID: step.CheckID, Err: appErr})

		if policy == FailFast {
			for _, rest := range steps[i+1:] {
				res.Skipped = append(res.Skipped, rest.CheckID)
			}
			log.Error(appErr.Message, logger.ErrorFields(step.CheckID, err))
			return appErr
		}
		log.Warn(appErr.Message, logger.ErrorFields(step.CheckID, err))
	}
	return nil
}
