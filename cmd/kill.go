package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kshitijkb28/port-manager/internal/config"
	"github.com/Kshitijkb28/port-manager/internal/notification"
	"github.com/Kshitijkb28/port-manager/internal/process"
)

var (
	killTree bool
	killYes  bool
)

var killCmd = &cobra.Command{
	Use:   "kill <pid>",
	Short: "Terminate a process by PID",
	Long: `Terminates the given process. With --tree, the controller-tree resolver
runs first and the highest controller ancestor is terminated together with
all its descendants, so a wrapper cannot respawn the target. Without a
controller, --tree degrades to killing only the given PID.`,
	Args: cobra.ExactArgs(1),
	RunE: runKill,
}

func init() {
	killCmd.Flags().BoolVar(&killTree, "tree", false, "terminate the whole controller tree")
	killCmd.Flags().BoolVar(&killYes, "yes", false, "skip the confirmation prompt")
}

func runKill(cmd *cobra.Command, args []string) error {
	cfg := config.Global

	pid, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil || pid <= 0 {
		return fmt.Errorf("invalid pid %q", args[0])
	}

	if !killYes && !confirmKill(int32(pid), killTree) {
		fmt.Println("Aborted.")
		return nil
	}

	auditor, err := notification.NewAuditor(cfg.Notifications.AuditFile)
	if err != nil {
		return fmt.Errorf("creating auditor: %w", err)
	}
	defer auditor.Close()

	eng := buildEngine(cfg)

	res := eng.mgr.Terminate(int32(pid), killTree)
	auditor.LogTermination(int32(pid), "", res.Outcome.String())

	if res.Outcome != process.OutcomeKilled {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Println(res.Message)
	return nil
}

func confirmKill(pid int32, tree bool) bool {
	what := fmt.Sprintf("process %d", pid)
	if tree {
		what = fmt.Sprintf("the controller tree of process %d", pid)
	}
	fmt.Printf("Terminate %s? [y/N]: ", what)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
