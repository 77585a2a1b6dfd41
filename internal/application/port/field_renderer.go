package port

import (
	"context"

	"github.com/bnema/cookiemsg/internal/domain/entity"
)

// FieldRenderer turns a field and its resolved value into markup.
// Values handed to it are already sanitized; it only applies output-context encoding.
type FieldRenderer interface {
	RenderField(ctx context.Context, field entity.Field, value entity.Value) (string, error)
}
