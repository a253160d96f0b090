package cli

import (
	"net/http"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/outfitterhq/outfitter/internal/errors"
	"github.com/outfitterhq/outfitter/internal/executor"
	"github.com/outfitterhq/outfitter/internal/pkgmgr"
	"github.com/outfitterhq/outfitter/internal/settings"
)

// Probes the checks run, replaceable in tests.
var (
	lookPathFunc       = exec.LookPath
	detectManagersFunc = pkgmgr.Detect
	networkProbeFunc   = probeNetwork
)

const networkProbeURL = "https://github.com"

type checkStatus int

const (
	checkOK checkStatus = iota
	checkWarn
	checkFail
)

// checkResult is one doctor row: what was checked, how it went, and
// what to do about it.
type checkResult struct {
	Name   string
	Status checkStatus
	Detail string
	Hint   string
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that this machine can run installs",
	Long: `Doctor verifies the environment an install depends on: a usable
package manager, the tools download and git-clone steps invoke,
network reachability for remote task repositories, and the user
settings location. Warnings point at features that would degrade;
failures mean installs cannot work.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	results := runDoctorChecks()

	failed := 0
	for _, r := range results {
		switch r.Status {
		case checkOK:
			out.CheckOK(r.Name, r.Detail)
		case checkWarn:
			out.CheckWarn(r.Name, r.Detail)
		default:
			out.CheckFail(r.Name, r.Detail)
			failed++
		}
		if r.Hint != "" {
			out.Hint("    %s", r.Hint)
		}
	}

	if failed > 0 {
		return errors.Environmentf("%d of %d checks failed", failed, len(results))
	}
	out.FinalSuccess("machine is ready for installs")
	return nil
}

func runDoctorChecks() []checkResult {
	return []checkResult{
		platformCheck(),
		managersCheck(),
		binaryCheck("git", "git-clone steps need git on PATH", checkFail),
		binaryCheck("curl", "download steps fall back to curl", checkWarn),
		sudoCheck(),
		networkCheck(),
		settingsCheck(),
	}
}

func platformCheck() checkResult {
	return checkResult{
		Name:   "platform",
		Status: checkOK,
		Detail: executor.CurrentPlatform(),
	}
}

func managersCheck() checkResult {
	found := detectManagersFunc()
	if len(found) == 0 {
		return checkResult{
			Name:   "package managers",
			Status: checkFail,
			Detail: "none detected",
			Hint:   "install one of: " + strings.Join(pkgmgr.Names(), ", "),
		}
	}

	names := make([]string, 0, len(found))
	for _, m := range found {
		names = append(names, m.Name)
	}
	return checkResult{
		Name:   "package managers",
		Status: checkOK,
		Detail: strings.Join(names, ", "),
	}
}

func binaryCheck(name, why string, missing checkStatus) checkResult {
	path, err := lookPathFunc(name)
	if err != nil {
		return checkResult{Name: name, Status: missing, Detail: "not on PATH", Hint: why}
	}
	return checkResult{Name: name, Status: checkOK, Detail: path}
}

func sudoCheck() checkResult {
	if executor.CurrentPlatform() == "windows" {
		return checkResult{Name: "sudo", Status: checkOK, Detail: "not needed on windows"}
	}
	if _, err := lookPathFunc("sudo"); err != nil {
		return checkResult{
			Name:   "sudo",
			Status: checkWarn,
			Detail: "not on PATH",
			Hint:   "formulas marked require-sudo will fail",
		}
	}
	return checkResult{Name: "sudo", Status: checkOK, Detail: "available"}
}

func networkCheck() checkResult {
	if err := networkProbeFunc(); err != nil {
		return checkResult{
			Name:   "network",
			Status: checkWarn,
			Detail: err.Error(),
			Hint:   "remote task repositories and download steps will not work offline",
		}
	}
	return checkResult{Name: "network", Status: checkOK, Detail: networkProbeURL + " reachable"}
}

func settingsCheck() checkResult {
	path, err := settings.Path()
	if err != nil {
		return checkResult{Name: "settings", Status: checkWarn, Detail: err.Error()}
	}
	return checkResult{Name: "settings", Status: checkOK, Detail: path}
}

func probeNetwork() error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Head(networkProbeURL)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
