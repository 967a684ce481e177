package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/theme"
)

// themesCommand creates the themes command group.
func (c *CLI) themesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List, check and create color themes",
		Long: `List, check and create color themes.

A theme maps each block role (hour, minute, both) to a style. Styles are
hex colors such as "#3b6ea5" or ANSI color indices such as "12".

` + theme.FormatHelp(),
	}

	cmd.AddCommand(c.themesListCommand())
	cmd.AddCommand(c.themesCheckCommand())
	cmd.AddCommand(c.themesPathCommand())
	cmd.AddCommand(c.themesInitCommand())

	return cmd
}

func (c *CLI) themesListCommand() *cobra.Command {
	var file, active string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveThemesPath(file)
			ts, err := theme.LoadWithBuiltin(path)
			if err != nil {
				return err
			}
			fmt.Println(StyleTitle.Render("Themes"))
			if path != "" {
				printInfo("Built-in themes merged with %s", StyleValue.Render(path))
			}
			for _, line := range themeLines(ts, active) {
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "themes", "", "themes file merged over the built-ins")
	cmd.Flags().StringVar(&active, "theme", theme.DefaultName, "theme to mark as active")
	return cmd
}

// themeLines formats one line per theme, sorted by name.
func themeLines(ts *theme.Themes, active string) []string {
	names := ts.Names()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		th, err := ts.Lookup(name)
		if err != nil {
			continue
		}
		lines = append(lines, themeLine(name, th, name == active))
	}
	return lines
}

func (c *CLI) themesCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a themes file without using it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			ts, err := theme.Load(args[0])
			if err != nil {
				printError("%s is invalid", args[0])
				return err
			}
			logger.Debug("checked themes", "path", args[0], "themes", ts.Len())
			printSuccess("%s defines %d theme(s): %s", args[0], ts.Len(), strings.Join(ts.Names(), ", "))
			return nil
		},
	}
}

func (c *CLI) themesPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where the per-user themes file is read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := defaultThemesPath()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "locate config directory")
			}
			status := "not present, built-ins only"
			if _, err := os.Stat(path); err == nil {
				status = "present"
			}
			printKeyValue("Themes file", path)
			printKeyValue("Status", status)
			return nil
		},
	}
}

func (c *CLI) themesInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [FILE]",
		Short: "Write the built-in themes to a file as a starting point",
		Long: `Write the built-in themes to a file as a starting point.

The format follows the file extension. Without FILE the per-user themes file
is written, which render and watch pick up automatically.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := defaultThemesPath()
			if len(args) == 1 {
				path, err = args[0], nil
			}
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "locate config directory")
			}
			if err := initThemesFile(path, force); err != nil {
				return err
			}
			printSuccess("Wrote %d themes", theme.Builtin().Len())
			printFile(path)
			printNextStep("Check it", appName+" themes check "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// initThemesFile encodes the built-in themes to path in the format implied
// by its extension.
func initThemesFile(path string, force bool) error {
	format, err := theme.FormatFromPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
	}
	data, err := theme.Encode(theme.Builtin(), format)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}
