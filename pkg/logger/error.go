package logger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/merkledrop/claim-gateway/pkg/logger/slogx"
)

// middlewareError expands error attributes with a verbose representation,
// including the stack trace when the error carries one (cockroachdb/errors).
func middlewareError() middleware {
	return func(next handleFunc) handleFunc {
		return func(ctx context.Context, rec slog.Record) error {
			rec.Attrs(func(attr slog.Attr) bool {
				if attr.Key == slogx.ErrorKey || attr.Key == "err" {
					err := attr.Value.Any()
					if err, ok := err.(error); ok && err != nil {
						rec.AddAttrs(slog.String(ErrorVerboseKey, fmt.Sprintf("%+v", err)))
					}
				}
				return false
			})

			return next(ctx, rec)
		}
	}
}
