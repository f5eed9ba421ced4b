package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
)

var daemon bool

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Port Manager API in background daemon mode",
	RunE:  runStart,
}

func init() {
	startCmd.Flags().BoolVar(&daemon, "daemon", false, "run as background daemon")
}

func runStart(cmd *cobra.Command, args []string) error {
	pidFile := filepath.Join(os.TempDir(), "port-manager.pid")

	// Check if already running
	if data, err := os.ReadFile(pidFile); err == nil {
		if pid, err := strconv.Atoi(string(data)); err == nil {
			if proc, err := os.FindProcess(pid); err == nil {
				if err := proc.Signal(syscall.Signal(0)); err == nil {
					return fmt.Errorf("daemon already running (PID: %d)", pid)
				}
			}
		}
	}

	if !daemon {
		fmt.Println("Starting Port Manager in foreground...")
		fmt.Println("Use --daemon flag to run in background.")
		return runServe(cmd, args)
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("finding executable: %w", err)
	}

	daemonArgs := []string{"serve"}
	if cfgFile != "" {
		daemonArgs = append(daemonArgs, "--config", cfgFile)
	}

	proc := exec.Command(executable, daemonArgs...)
	proc.Stdout = nil
	proc.Stderr = nil
	proc.Stdin = nil

	if err := proc.Start(); err != nil {
		return fmt.Errorf("starting daemon: %w", err)
	}

	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(proc.Process.Pid)), 0644); err != nil {
		return fmt.Errorf("writing pid file: %w", err)
	}

	fmt.Printf("Port Manager daemon started (PID: %d)\n", proc.Process.Pid)
	fmt.Printf("PID file: %s\n", pidFile)
	fmt.Println("Use 'port-manager stop' to stop the daemon.")
	fmt.Println("Use 'port-manager logs --follow' to watch the log output.")

	return nil
}
