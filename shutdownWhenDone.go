// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package multiweb

import (
	"context"

	"go.uber.org/fx"
)

// TaskCtx is the type that any one-shot operation run inside an fx.App must conform to.
type TaskCtx interface {
	~func(context.Context) | ~func(context.Context) error
}

// ShutdownWhenDone executes a task and ensures that the enclosing fx.App
// is shutdown when the task is complete.  Any error, including a nil error, from the task
// is interpolated into an exit code via ExitCodeFor.  That exit code will be available
// in the fx.ShutdownSignal.
//
// This is how the check command loads every tenant and then exits.
func ShutdownWhenDone[T TaskCtx](ctx context.Context, sh fx.Shutdowner, coder ErrorCoder, task T) (err error) {
	defer func() {
		sh.Shutdown(
			fx.ExitCode(
				ExitCodeFor(err, coder),
			),
		)
	}()

	if t, ok := any(task).(func(context.Context)); ok {
		t(ctx)
	} else {
		err = any(task).(func(context.Context) error)(ctx)
	}

	return
}
