package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rural-assist/pkg/registry"
)

var registryPath string

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect and maintain the activity registry",
}

var registryValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the registry for missing fields and duplicates",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}
		if err := reg.Validate(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "registry OK: %d activities\n", len(reg.Activities))
		return nil
	},
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered job types",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TASK TYPE\tCATEGORY\tSTATUS\tTIMEOUT")
		for _, taskType := range reg.TaskTypes() {
			a, _ := reg.Find(taskType)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.TaskType, a.Category, a.ImplementationStatus, a.Timeout)
		}
		return w.Flush()
	},
}

var registryStatusCmd = &cobra.Command{
	Use:   "set-status <activity-id> <status>",
	Short: "Update an activity's implementation status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveRegistryPath()
		if err != nil {
			return err
		}
		reg, err := registry.LoadRegistry(path)
		if err != nil {
			return err
		}
		if err := reg.SetStatus(args[0], args[1]); err != nil {
			return err
		}
		if err := reg.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registryCmd)
	registryCmd.PersistentFlags().StringVar(&registryPath, "registry", "", "Registry file (default: registry.path from config)")
	registryCmd.AddCommand(registryValidateCmd, registryListCmd, registryStatusCmd)
}

func resolveRegistryPath() (string, error) {
	if registryPath != "" {
		return registryPath, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Registry.Path, nil
}

func openRegistry() (*registry.ActivityRegistry, error) {
	path, err := resolveRegistryPath()
	if err != nil {
		return nil, err
	}
	return registry.LoadRegistry(path)
}
