// Package cli implements the kanban command-line interface. Commands map
// arguments onto internal/board operations and do no file I/O of their own
// against the board format.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/board"
	"github.com/mesh-intelligence/kanban/internal/logging"
	"github.com/mesh-intelligence/kanban/internal/paths"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Version is the kanban release, overridable at link time.
var Version = "0.1.0"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	boardDir  string
	jsonMode  bool
}

// app is the state PersistentPreRunE prepares for subcommands.
type app struct {
	flags  rootFlags
	config types.Config
	logger *log.Logger
}

// NewRootCmd creates the top-level "kanban" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "kanban",
		Short: "A file-backed kanban board for a repository",
		Long: "Kanban keeps a board in .kanban/: board.yaml holds columns and card order,\n" +
			"cards/<id>.md holds one card each, archive/ holds retired cards.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return userError(err)
	})

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.boardDir, "board-dir", "", "board directory (default: nearest .kanban)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newUpdateCmd(a),
		newMoveCmd(a),
		newDoneCmd(a),
		newNoteCmd(a),
		newBlockCmd(a),
		newUnblockCmd(a),
		newDeleteCmd(a),
		newArchiveCmd(a),
		newSweepCmd(a),
		newValidateCmd(a),
		newIntakeCmd(a),
		newHeartbeatCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kanban:", err)
		os.Exit(exitCode(err))
	}
}

// setup resolves directories, loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}

	boardDir, err := paths.ResolveBoardDir(a.flags.boardDir, v.GetString(cfgKeyBoardDir))
	if err != nil {
		return sysError(fmt.Errorf("resolve board dir: %w", err))
	}

	a.config = types.Config{
		BoardDir:  boardDir,
		Author:    v.GetString(cfgKeyAuthor),
		Lock:      v.GetBool(cfgKeyLock),
		Adapters:  v.GetStringSlice(cfgKeyAdapters),
		LogLevel:  v.GetString(cfgKeyLogLevel),
		LogFormat: v.GetString(cfgKeyLogFormat),
	}
	if err := a.config.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", configDir, err)
	}

	a.logger, err = logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  a.config.LogLevel,
		Format: a.config.LogFormat,
		Prefix: "kanban",
	})
	if err != nil {
		return err
	}
	a.logger.Debug("resolved directories", "config", configDir, "board", boardDir)
	return nil
}

// store opens the board store for the resolved board directory.
func (a *app) store() (*board.Store, error) {
	return board.NewStore(a.config, a.logger)
}

// author returns flag when set, else the configured default author.
func (a *app) author(flag string) string {
	if flag != "" {
		return flag
	}
	return a.config.Author
}

// exitError carries an explicit exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

// exactArgs is cobra.ExactArgs with argument errors reported as user errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return userError(err)
		}
		return nil
	}
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return userError(err)
		}
		return nil
	}
}

// userErrors are the sentinels caused by bad input or board state rather
// than by the environment.
var userErrors = []error{
	types.ErrBoardNotFound,
	types.ErrBoardInvalid,
	types.ErrBoardExists,
	types.ErrCardInvalid,
	types.ErrCardNotFound,
	types.ErrCardExists,
	types.ErrColumnNotFound,
	types.ErrNoDoneColumn,
	types.ErrBlockerNotFound,
	types.ErrTitleEmpty,
	types.ErrAuthorEmpty,
	types.ErrAuthorInvalid,
	types.ErrContentInvalid,
	types.ErrInvalidPriority,
	types.ErrInvalidSource,
	types.ErrInvalidNoteType,
	types.ErrLockHeld,
	types.ErrBoardDirEmpty,
	types.ErrAdapterUnknown,
	types.ErrLogLevelUnknown,
	types.ErrLogFormatUnknown,
}

// exitCode maps a command error to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		return exitUserError
	}
	return exitSysError
}

// printf writes to the command's output stream.
func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
