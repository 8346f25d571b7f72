package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/s3nik/ccjournal/internal/settings"
)

func (a *app) newInstallHookCommand() *cobra.Command {
	var command string

	cmd := &cobra.Command{
		Use:   "install-hook",
		Short: "Register an activity hook in the assistant's settings file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			hookCommand := command
			if hookCommand == "" {
				exe, err := os.Executable()
				if err != nil {
					return err
				}
				hookCommand = exe + " sync"
			}

			path := filepath.Join(a.cfg.ClaudeDir, "settings.json")
			installed, err := settings.InstallHook(path, hookCommand)
			if err != nil {
				return err
			}
			if installed {
				cmd.Printf("Hook installed in %s\n", path)
			} else {
				cmd.Println("Hook already installed.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&command, "command", "", "hook command to register (default: this binary's sync)")
	return cmd
}
