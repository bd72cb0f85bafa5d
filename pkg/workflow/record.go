package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/perfpredict/dataver/pkg/errors"
	"github.com/perfpredict/dataver/pkg/model"
	"github.com/perfpredict/dataver/pkg/status"
	"go.uber.org/zap"
)

// record makes the external tools aware of the file's current content
// and optionally binds a tag to that state.
func (w *Workflow) record(ctx context.Context, entry model.Entry) (model.TagDescriptor, bool, error) {
	if err := w.data.Add(ctx, entry.Path); err != nil {
		return model.TagDescriptor{}, false, err
	}

	if err := w.code.Add(ctx, model.SidecarPath(entry.Path), model.IgnorePath(entry.Path)); err != nil {
		return model.TagDescriptor{}, false, err
	}
	if err := w.code.Commit(ctx, model.DefaultCommitMessage(entry.Base)); err != nil {
		return model.TagDescriptor{}, false, err
	}

	return w.maybeTag(ctx)
}

// maybeTag creates the version tag. When no tag was preset, the operator
// is prompted; an empty answer leaves the commit untagged.
func (w *Workflow) maybeTag(ctx context.Context) (model.TagDescriptor, bool, error) {
	tag := w.tag
	if tag.Name == "" {
		fmt.Fprint(w.out, "Tag name (empty to skip): ")
		name, err := w.readLine()
		if err != nil {
			return model.TagDescriptor{}, false, status.ErrInvalidInput.Wrap(err)
		}
		if name == "" {
			return model.TagDescriptor{}, false, nil
		}
		tag.Name = name
	}

	err := w.code.CreateTag(ctx, tag, w.tagOverwrite)
	if err == nil {
		return tag, true, nil
	}
	if !errors.Is(err, status.ErrTagExists) {
		return model.TagDescriptor{}, false, err
	}

	// collision: overwrite (delete + recreate) or skip. Skipping leaves
	// the commit untagged.
	fmt.Fprintf(w.out, "Tag %q already exists. Overwrite? [y/N]: ", tag.Name)
	answer, rerr := w.readLine()
	if rerr != nil {
		return model.TagDescriptor{}, false, status.ErrInvalidInput.Wrap(rerr)
	}
	if !isYes(answer) {
		w.l.Warn("tag collision, keeping original target", zap.String("tag", tag.Name))
		fmt.Fprintf(w.out, "Keeping existing tag %q, commit left untagged.\n", tag.Name)
		return model.TagDescriptor{}, false, nil
	}
	if err := w.code.CreateTag(ctx, tag, true); err != nil {
		return model.TagDescriptor{}, false, err
	}
	return tag, true, nil
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
