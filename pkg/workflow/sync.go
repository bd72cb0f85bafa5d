package workflow

import (
	"context"
	"fmt"

	"github.com/perfpredict/dataver/pkg/model"
	"go.uber.org/zap"
)

// sync best-effort propagates the data payload and the code/tag metadata
// to their respective remotes. Data and metadata pushes are independent
// and idempotent to retry, so each failure is caught and downgraded to a
// warning instead of aborting the remaining steps.
func (w *Workflow) sync(ctx context.Context, tag model.TagDescriptor, tagged bool) []string {
	var warnings []string
	warn := func(what string, err error) {
		w.l.Warn(what+" failed", zap.Error(err))
		warnings = append(warnings, fmt.Sprintf("%s failed, retry later: %v", what, err))
	}

	if err := w.data.Push(ctx); err != nil {
		warn("data push", err)
	}
	if err := w.code.Push(ctx); err != nil {
		warn("code push", err)
	}
	if tagged {
		if err := w.code.PushTag(ctx, tag.Name); err != nil {
			warn("tag push", err)
		}
	}
	return warnings
}
