package framework

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	ctx        context.Context
	results    Results
	testLogger TestLogger
	filter     Filter
	haltReason string
}

// Context represents one step of a run. It is used similarly to *testing.T: assertions from the
// testify assert and require packages can be passed a *Context.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run executes the top-level action of a run and returns the accumulated results. Steps are
// declared inside the action by calling Context.Run.
//
// If ctx is cancelled, the step that is currently executing is allowed to finish (its own
// blocking operations should observe Ctx()), and all later steps are skipped.
func Run(
	ctx context.Context,
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	env := &environment{
		ctx:        ctx,
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("step failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in step: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		if len(c.id.Path) == 0 || c.skipped {
			return
		}
		result := TestResult{TestID: c.id, Errors: c.errors}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) ID() TestID {
	return c.id
}

// Ctx returns the cancellation context of the run.
func (c *Context) Ctx() context.Context {
	return c.env.ctx
}

// Run runs a step. It returns true only if the step ran to completion without failing.
//
// A step is skipped instead of being run if an earlier step failed, if the run was cancelled,
// or if the filter excludes it. If the step fails, the run is halted.
func (c *Context) Run(name string, action func(*Context)) bool {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.haltReason == "" && c.env.ctx.Err() != nil {
		c.env.haltReason = "run was interrupted"
	}
	if c.env.haltReason != "" {
		c.recordSkipped(id, c.env.haltReason)
		return false
	}
	if c.env.filter != nil && !c.env.filter(id) {
		c.recordSkipped(id, "excluded by filter parameters")
		return false
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.recordSkipped(id, c1.skipReason)
		return false
	}
	c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	if c1.failed {
		if c.env.haltReason == "" {
			c.env.haltReason = fmt.Sprintf("halted after failure in %q", id)
			haltedBy := id
			c.env.results.HaltedBy = &haltedBy
		}
		return false
	}
	return true
}

func (c *Context) recordSkipped(id TestID, reason string) {
	c.env.results.Skipped = append(c.env.results.Skipped,
		TestResult{TestID: id, Skipped: true, SkipReason: reason})
	c.env.testLogger.TestSkipped(id, reason)
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}
