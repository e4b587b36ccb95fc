package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// FormatText writes a report in human-readable form.
func FormatText(w io.Writer, r *Report) {
	fmt.Fprintf(w, "\n%s performance:\n", r.Scenario)
	fmt.Fprintf(w, "Time taken: %v\n", r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Keys generated per second: %.2f\n", r.KeygenRate)
	fmt.Fprintf(w, "Single verifications per second: %.2f\n", r.SingleVerifyRate)
	fmt.Fprintf(w, "Double verifications per second: %.2f\n", r.DoubleVerifyRate)

	if len(r.PerWorker) > 0 {
		fmt.Fprintf(w, "Per-worker breakdown (%d workers):\n", r.Workers)
		for i, wc := range r.PerWorker {
			fmt.Fprintf(w, "  worker %-3d keygen=%-10d single=%-10d double=%d\n",
				i, wc.Keygen, wc.SingleVerify, wc.DoubleVerify)
		}
	}

	if r.Anomalies > 0 {
		fmt.Fprintf(w, "WARNING: %d verification(s) unexpectedly returned false\n", r.Anomalies)
	}
}

type jsonWorkerCounts struct {
	Worker       int    `json:"worker"`
	Keygen       uint64 `json:"keygen"`
	SingleVerify uint64 `json:"singleVerify"`
	DoubleVerify uint64 `json:"doubleVerify"`
}

// FormatJSON writes a report as indented JSON. The field layout is
// what baseline comparison reads back.
func FormatJSON(w io.Writer, r *Report) error {
	output := struct {
		RunID          string  `json:"runId"`
		Scenario       string  `json:"scenario"`
		Elapsed        string  `json:"elapsed"`
		ElapsedSeconds float64 `json:"elapsedSeconds"`
		Workers        int     `json:"workers"`
		Counts         struct {
			Keygen       uint64 `json:"keygen"`
			SingleVerify uint64 `json:"singleVerify"`
			DoubleVerify uint64 `json:"doubleVerify"`
			Anomalies    uint64 `json:"anomalies"`
		} `json:"counts"`
		Rates struct {
			Keygen       float64 `json:"keygen"`
			SingleVerify float64 `json:"singleVerify"`
			DoubleVerify float64 `json:"doubleVerify"`
		} `json:"rates"`
		PerWorker []jsonWorkerCounts `json:"perWorker,omitempty"`
	}{
		RunID:          r.RunID,
		Scenario:       r.Scenario,
		Elapsed:        r.Elapsed.Round(time.Millisecond).String(),
		ElapsedSeconds: r.Elapsed.Seconds(),
		Workers:        r.Workers,
	}
	output.Counts.Keygen = r.Keygen
	output.Counts.SingleVerify = r.SingleVerify
	output.Counts.DoubleVerify = r.DoubleVerify
	output.Counts.Anomalies = r.Anomalies
	output.Rates.Keygen = r.KeygenRate
	output.Rates.SingleVerify = r.SingleVerifyRate
	output.Rates.DoubleVerify = r.DoubleVerifyRate

	for i, wc := range r.PerWorker {
		output.PerWorker = append(output.PerWorker, jsonWorkerCounts{
			Worker:       i,
			Keygen:       wc.Keygen,
			SingleVerify: wc.SingleVerify,
			DoubleVerify: wc.DoubleVerify,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
