package registry

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/specialistvlad/killweb/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Validate checks that every discovered definition binds to a registered
// handler and that every default converts to its declared type. All problems
// are reported together.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, name := range slices.Sorted(maps.Keys(r.definitions)) {
		def := r.definitions[name]
		if _, ok := r.handlers[def.Handler]; !ok {
			errs = append(errs, fmt.Sprintf("task '%s' (%s): handler '%s' is not registered", name, def.Source, def.Handler))
		}

		for _, in := range def.Inputs {
			if in.Type == cty.DynamicPseudoType {
				logger.Debug("Task input has no declared type; arguments are passed through unchecked.", "task", name, "input", in.Name)
				continue
			}
			if in.Default == nil {
				continue
			}
			if _, err := convert.Convert(*in.Default, in.Type); err != nil {
				errs = append(errs, fmt.Sprintf("task '%s', input '%s': default is not a valid %s: %v", name, in.Name, in.Type.FriendlyName(), err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
