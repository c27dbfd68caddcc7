package transport

import (
	"fmt"

	"github.com/ds124wfegd/imgfilter/internal/entity"
	"github.com/ds124wfegd/imgfilter/internal/translator"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	helpHint       = "Run with -h or --help flag for list of available commands."
	argsTerminator = "--"
)

// InitCommand builds the root command. Flag parsing is left to the
// translator so aliases, repeated -f and the positional input keep their
// own rules.
func InitCommand(h *ImageHandler) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "imgfilter [-i <path>] [-f <name[:arg...]>]... [-o <name[:FORMAT]>]",
		Short:              "Applies a chain of filters to an image",
		Long:               translator.HelpMessage,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE:               h.Filter,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	cmd.SetOut(h.out)
	cmd.SetErr(h.errOut)
	return cmd
}

func (h *ImageHandler) Filter(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && args[0] == argsTerminator {
		args = args[1:]
	}
	path, err := h.service.Run(args)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Result saved to %s\n", path)
	return nil
}

// Execute runs the command line and maps the outcome to an exit code.
func (h *ImageHandler) Execute(args []string) int {
	cmd := InitCommand(h)
	// "--" stops cobra from resolving help, completion or __complete as
	// subcommands, so the first token always stays the input candidate
	cmd.SetArgs(append([]string{argsTerminator}, args...))

	err := cmd.Execute()
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, entity.ErrHelpRequested):
		fmt.Fprintln(h.out, translator.HelpMessage)
		return ExitHelp
	case errors.Is(err, entity.ErrInvalidArguments):
		fmt.Fprintf(h.errOut, "Error: %v\n%s\n", err, translator.HelpMessage)
	case isUsageError(err):
		fmt.Fprintf(h.errOut, "Error: %v. %s\n", err, helpHint)
	default:
		fmt.Fprintf(h.errOut, "Error: %v\n", err)
	}
	return ExitFailure
}

func isUsageError(err error) bool {
	for _, target := range []error{
		entity.ErrInvalidCommand,
		entity.ErrDuplicateFlag,
		entity.ErrMissingOutputValue,
		entity.ErrInvalidExtension,
		entity.ErrEmptyOutputName,
		entity.ErrInvalidImage,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
