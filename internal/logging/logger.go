// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/morikuni/failure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Supported log formats
const (
	FormatAuto  = "auto"
	FormatHuman = "human"
	FormatJSON  = "json"
)

func formatFrame(frame failure.Frame) string {
	return frame.Pkg() + "." + frame.Func() + ":" + strconv.Itoa(frame.Line())
}

func errorStackMarshaller(err error) interface{} {
	if cs, ok := failure.CallStackOf(err); ok {
		frames := cs.Frames()
		res := make([]string, 0, len(frames))
		for _, frame := range frames {
			res = append(res, formatFrame(frame))
		}
		return res
	}
	return nil
}

// Setup installs the global logger writing to stdout
func Setup(level, format string) error {
	return SetupWriter(os.Stdout, level, format)
}

// SetupWriter installs the global logger writing to out.
// format "auto" uses the console writer when out is a terminal.
func SetupWriter(out io.Writer, level, format string) error {
	useConsoleWriter := false
	switch format {
	case FormatAuto:
		useConsoleWriter = isTerminal(out)
	case FormatHuman:
		useConsoleWriter = true
	case FormatJSON:
		useConsoleWriter = false
	default:
		return fmt.Errorf("invalid log format: %s, expected: [auto, json, human]", format)
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}

	writer := out
	if useConsoleWriter {
		writer = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = out
			w.NoColor = !isTerminal(out)
		})
	}

	zerolog.SetGlobalLevel(lvl)
	zerolog.ErrorStackMarshaler = errorStackMarshaller
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
	return nil
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
