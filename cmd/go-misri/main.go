package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tartampluch/go-misri/internal/config"
)

// main delegates to runMain so that deferred calls run before os.Exit.
func main() {
	os.Exit(runMain(os.Args[1:]))
}

// runMain executes the command line and maps the outcome to an exit code.
func runMain(args []string) int {
	a := &app{}
	root := newRootCommand(a)
	root.SetArgs(args)

	err := root.Execute()
	a.close()

	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// printVersion writes the build information.
func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs the default slog logger. Logs go to stderr, which keeps
// stdout clean for command output, and to the configured file if any.
// The returned closer is nil when no file was opened.
func setupLogging(ls config.LogSettings, debugMode bool) (io.Closer, error) {
	writers := []io.Writer{os.Stderr}
	var logFile *os.File

	if ls.File != "" {
		if err := os.MkdirAll(filepath.Dir(ls.File), config.DirPermUserRWX); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrLogFile, err)
		}
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(ls.File, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrLogFile, err)
		}
		writers = append(writers, f)
		logFile = f
	}

	level, err := ls.SlogLevel()
	if err != nil {
		return nil, err
	}
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	out := io.MultiWriter(writers...)
	var handler slog.Handler
	if ls.Format == config.LogFormatText {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	slog.SetDefault(slog.New(handler))

	if logFile == nil {
		return nil, nil
	}
	return logFile, nil
}
