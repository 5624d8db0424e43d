package bindgen

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/rsbind/errors"
	"github.com/teranos/rsbind/logger"
)

// LineEnding selects the emitted line terminator
type LineEnding string

const (
	LF   LineEnding = "lf"
	CRLF LineEnding = "crlf"
)

// NormalizeLineEndings rewrites \r\n and lone \r to \n, then to \r\n for CRLF
func NormalizeLineEndings(s string, ending LineEnding) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if ending == CRLF {
		s = strings.ReplaceAll(s, "\n", "\r\n")
	}
	return s
}

// Formatter reformats one unit of source
type Formatter interface {
	Format(ctx context.Context, fileName string, src []byte) ([]byte, error)
}

// EmitOptions control post-processing
type EmitOptions struct {
	LineEnding LineEnding
	// Formatter is optional; nil leaves units unformatted
	Formatter Formatter
}

// Emit post-processes every unit in place: line endings are normalised to \n,
// the formatter runs, then the requested line ending is applied.
// A formatter failure is recorded in result.Warnings and the unit keeps its
// unformatted text; Emit only fails when ctx is cancelled.
func Emit(ctx context.Context, result *Result, opts EmitOptions, log *zap.SugaredLogger) error {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	for i := range result.Units {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "emit cancelled")
		}

		u := &result.Units[i]
		text := NormalizeLineEndings(u.Text, LF)

		if opts.Formatter != nil {
			start := time.Now()
			formatted, err := opts.Formatter.Format(ctx, u.FileName, []byte(text))
			if err != nil {
				if ctx.Err() != nil {
					return errors.Wrap(ctx.Err(), "emit cancelled")
				}
				warning := errors.Wrapf(err, "formatting %s", u.FileName)
				result.Warnings = append(result.Warnings, warning)
				log.Warnw("Formatter failed, keeping unformatted output",
					logger.FieldFile, u.FileName,
					logger.FieldError, err.Error(),
				)
			} else {
				text = NormalizeLineEndings(string(formatted), LF)
				u.Formatted = true
				log.Debugw("Formatted unit",
					logger.FieldFile, u.FileName,
					logger.FieldDurationMS, time.Since(start).Milliseconds(),
				)
			}
		}

		u.Text = NormalizeLineEndings(text, opts.LineEnding)
	}
	return nil
}
