package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/theme"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or edit the theme file",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective theme as YAML",
	Args:  cobra.NoArgs,
	RunE:  runThemeShow,
}

var themeInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default theme to the theme file",
	Args:  cobra.NoArgs,
	RunE:  runThemeInit,
}

var themeSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set one theme value, e.g. colors.accent_hex '#1F4E79'",
	Long: `Set a theme value by dotted key and save the file. VALUE is read as YAML, so
numbers, booleans and lists such as "[header, summary, experience]" keep their types.`,
	Args: cobra.ExactArgs(2),
	RunE: runThemeSet,
}

var themeInitForce bool

func init() {
	themeInitCmd.Flags().BoolVarP(&themeInitForce, "force", "f", false, "Overwrite an existing theme file")

	themeCmd.AddCommand(themeShowCmd, themeInitCmd, themeSetCmd)
	rootCmd.AddCommand(themeCmd)
}

func runThemeShow(cmd *cobra.Command, _ []string) error {
	th, err := theme.Load(cfg.Theme)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		printer.PrintTheme(cfg.Theme, th)
	}

	data, err := yaml.Marshal(th)
	if err != nil {
		return fmt.Errorf("failed to marshal theme: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runThemeInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(cfg.Theme); err == nil && !themeInitForce {
		return fmt.Errorf("theme file %s already exists (use --force to overwrite)", cfg.Theme)
	}
	if err := theme.Save(cfg.Theme, theme.Default()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Theme)
	return nil
}

func runThemeSet(cmd *cobra.Command, args []string) error {
	th, err := theme.Load(cfg.Theme)
	if err != nil {
		return err
	}
	updated, err := theme.Set(th, args[0], args[1])
	if err != nil {
		return err
	}
	if err := theme.Save(cfg.Theme, updated); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], cfg.Theme)
	return nil
}
