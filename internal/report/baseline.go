package report

import (
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
)

// CompareBaseline prints the current run's rates against a previous
// run's JSON report, one speedup line per operation kind. The baseline
// must come from the same scenario for the comparison to mean
// anything, so a scenario mismatch is an error.
func CompareBaseline(w io.Writer, r *Report, baseline []byte) error {
	if !gjson.ValidBytes(baseline) {
		return fmt.Errorf("baseline is not valid JSON")
	}

	baseScenario := gjson.GetBytes(baseline, "scenario").String()
	if baseScenario != r.Scenario {
		return fmt.Errorf("baseline scenario %q does not match current %q", baseScenario, r.Scenario)
	}

	fmt.Fprintf(w, "Versus baseline %s:\n", gjson.GetBytes(baseline, "runId").String())
	compareRate(w, "keygen", r.KeygenRate, gjson.GetBytes(baseline, "rates.keygen"))
	compareRate(w, "single verify", r.SingleVerifyRate, gjson.GetBytes(baseline, "rates.singleVerify"))
	compareRate(w, "double verify", r.DoubleVerifyRate, gjson.GetBytes(baseline, "rates.doubleVerify"))
	return nil
}

// CompareBaselineFile reads a baseline report from disk and compares
// against it.
func CompareBaselineFile(w io.Writer, r *Report, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading baseline: %w", err)
	}
	return CompareBaseline(w, r, data)
}

func compareRate(w io.Writer, name string, current float64, base gjson.Result) {
	if !base.Exists() || base.Float() <= 0 {
		fmt.Fprintf(w, "  %-14s %.2f ops/s (no baseline rate)\n", name, current)
		return
	}
	fmt.Fprintf(w, "  %-14s %.2f ops/s vs %.2f ops/s (%.2fx)\n",
		name, current, base.Float(), current/base.Float())
}
