package workspace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nhle/photodesk/internal/apperr"
)

// check validates input's struct tags and reports failures as
// apperr.ErrValidation naming the offending fields.
func (w *Workspace) check(op string, input any) error {
	err := w.validate.Struct(input)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%s: %w: %w", op, apperr.ErrValidation, err)
	}

	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return fmt.Errorf("%s: %w: %s", op, apperr.ErrValidation, strings.Join(fields, ", "))
}
