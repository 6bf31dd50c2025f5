package wakefile

import (
	"bufio"
	"io"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/fgeck/homelab-wol/internal/models"
)

// FromLines parses wakeup lines lazily. Blank and comment lines are
// skipped. A line that fails to parse yields a *ParseLineError and
// iteration continues with the next line.
func FromLines(lines iter.Seq[string]) iter.Seq2[models.WakeupTarget, error] {
	return func(yield func(models.WakeupTarget, error) bool) {
		i := 0
		for line := range lines {
			lineNo := i + 1
			i++
			if skip(line) {
				continue
			}
			if !yield(parseNumbered(lineNo, line)) {
				return
			}
		}
	}
}

// FromReader parses a wakeup file from r line by line. In addition to the
// errors of FromLines it yields a *ReadError for lines that are not valid
// UTF-8, which does not stop iteration, and for a failing reader, which
// does.
func FromReader(r io.Reader) iter.Seq2[models.WakeupTarget, error] {
	return func(yield func(models.WakeupTarget, error) bool) {
		scanner := bufio.NewScanner(r)
		i := 0
		for scanner.Scan() {
			lineNo := i + 1
			i++
			line := scanner.Text()
			if !utf8.ValidString(line) {
				if !yield(models.WakeupTarget{}, &ReadError{Line: lineNo, Err: ErrInvalidEncoding}) {
					return
				}
				continue
			}
			if skip(line) {
				continue
			}
			if !yield(parseNumbered(lineNo, line)) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(models.WakeupTarget{}, &ReadError{Line: i + 1, Err: err})
		}
	}
}

func skip(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

func parseNumbered(lineNo int, line string) (models.WakeupTarget, error) {
	target, perr := parseLine(line)
	if perr != nil {
		return models.WakeupTarget{}, &ParseLineError{Line: lineNo, Err: perr}
	}
	return target, nil
}
