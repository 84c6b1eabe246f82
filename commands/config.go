package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jongio/weburl/cliout"
	"github.com/jongio/weburl/config"
	"github.com/jongio/weburl/editor"
)

// openEditor is replaced in tests.
var openEditor = editor.Open

func newConfigCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and edit the weburl configuration file",
		// Only the output format is applied so a broken file can still be fixed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cliout.SetFormat(o.output)
		},
	}
	cmd.AddCommand(
		newConfigShowCommand(o),
		newConfigInitCommand(o),
		newConfigSetCommand(o),
		newConfigEditCommand(o),
	)
	return cmd
}

// configFile is the file config init and set write to.
func (o *options) configFile() string {
	if o.configPath != "" {
		return o.configPath
	}
	if env := strings.TrimSpace(os.Getenv(config.EnvConfig)); env != "" {
		return env
	}
	return config.FileName
}

func newConfigShowCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o.configPath)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}

			if cliout.IsJSON() {
				values := map[string]any{}
				if err := yaml.Unmarshal(data, &values); err != nil {
					return fmt.Errorf("failed to encode config: %w", err)
				}
				values["source"] = cfg.Source
				return cliout.PrintJSON(values)
			}

			source := cfg.Source
			if source == "" {
				source = cliout.Muted("(defaults)")
			}
			cliout.Label("Source", source)
			cliout.Newline()
			cliout.Plain("%s", strings.TrimRight(string(data), "\n"))
			return nil
		},
	}
}

func newConfigInitCommand(o *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.configFile()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			return cliout.Print(map[string]string{"path": path}, func() {
				cliout.Success("Wrote %s", path)
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func newConfigSetCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one configuration value, keeping comments",
		Long: fmt.Sprintf(`Set one configuration value in the configuration file, creating the
file when needed. Comments and the order of existing keys are kept.

Keys: %s`, strings.Join(config.Keys(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.configFile()
			if err := config.Set(path, args[0], args[1]); err != nil {
				return err
			}
			return cliout.Print(map[string]string{"path": path, "key": args[0], "value": args[1]}, func() {
				cliout.Success("Set %s = %s in %s", args[0], args[1], path)
			})
		},
	}
}

func newConfigEditCommand(o *options) *cobra.Command {
	var editorName string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the configuration file in an editor",
		Long: `Open the configuration file in EDITOR, VISUAL or a detected editor,
creating it with default values first when it does not exist. The file is
validated after the editor exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.configFile()
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				if err := config.Save(path, config.Default()); err != nil {
					return err
				}
			} else if err != nil {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}

			if err := openEditor(cmd.Context(), path, editor.Options{Editor: editorName}); err != nil {
				return err
			}
			if _, err := config.Load(path); err != nil {
				return fmt.Errorf("%s is not valid after editing: %w", path, err)
			}
			return cliout.Print(map[string]string{"path": path}, func() {
				cliout.Success("%s is valid", path)
			})
		},
	}
	cmd.Flags().StringVar(&editorName, "editor", "", "Editor to use instead of EDITOR or VISUAL")
	return cmd
}
