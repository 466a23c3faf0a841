package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings such as the template path, the delivery
endpoint and the history backend.

Values are resolved from flags, then environment variables, then the config
file, then defaults. "settings set" writes to the config file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved settings and where each comes from",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save a setting to the config file",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	app, err := loadApp(nil)
	if err != nil {
		return err
	}
	defer app.shutdown()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE\tSOURCE\tENV")
	for _, v := range app.SettingsService.Describe() {
		value := v.Value
		if value == "" {
			value = "(not set)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.Key, value, v.Source, strings.Join(v.Env, ","))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	cmd.Println()
	if app.Settings.Delivery.IsConfigured() {
		cmd.Printf("Delivery: %s\n", app.Settings.Delivery.Target.Description())
	} else {
		cmd.Println("Delivery: not configured")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	app, err := loadApp(nil)
	if err != nil {
		return err
	}
	defer app.shutdown()

	key, value := args[0], args[1]
	if err := app.SettingsService.Set(key, value); err != nil {
		return fmt.Errorf("setting %s: %w (valid keys: %s)", key, err, strings.Join(app.SettingsService.Keys(), ", "))
	}
	cmd.Printf("Saved %s\n", key)
	return nil
}
