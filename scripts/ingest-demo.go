//go:build ignore

// ingest-demo.go - Local smoke test against a running recon-server
//
// Test Flow:
// 1. Wait for the server health endpoint
// 2. Submit a batch of audit register reports for two devices
// 3. Resubmit one report with a lower sequence number (restart detection)
// 4. Trigger the transaction total, UD AR reconciliation and device usage match batches
//
// Usage:
//   go run scripts/ingest-demo.go [-url http://localhost:8080] [-date 2025-10-15] [-verbose]
//
// Flags:
//   -url      Base URL of the recon-server
//   -date     Business and settlement date to use (default: today)
//   -verbose  Print full response bodies

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorCyan   = "\033[0;36m"
	colorReset  = "\033[0m"
)

var (
	baseURL = flag.String("url", "http://localhost:8080", "recon-server base URL")
	date    = flag.String("date", time.Now().Format("2006-01-02"), "business date (YYYY-MM-DD)")
	verbose = flag.Bool("verbose", false, "print full response bodies")
)

type entry struct {
	ARTypeIdentifier string   `json:"arTypeIdentifier"`
	CardMediaTypeID  *string  `json:"cardMediaTypeId,omitempty"`
	Count            int64    `json:"count"`
	Value            *float64 `json:"value,omitempty"`
}

type txn struct {
	TransactionType     string  `json:"transactionType"`
	TransactionDateTime string  `json:"transactionDateTime"`
	EquipmentID         string  `json:"equipmentId"`
	DeviceID            string  `json:"deviceId"`
	BEID                int     `json:"beId"`
	SeqNum              int64   `json:"auditRegisterSeqNum"`
	BusinessDate        string  `json:"businessDate"`
	Entries             []entry `json:"auditRegisterEntries"`
}

func main() {
	flag.Parse()

	fmt.Printf("%s=== Audit register ingest demo ===%s\n", colorCyan, colorReset)
	fmt.Printf("Server: %s  Date: %s\n\n", *baseURL, *date)

	if err := waitForEndpoint(*baseURL+"/health", 30, time.Second); err != nil {
		fail("server not healthy: %v", err)
	}
	ok("server is healthy")

	suica := "SUICA"
	fare, charge := 170.0, 1000.0
	reports := []txn{
		newTxn("GATE-001", 1, []entry{
			{ARTypeIdentifier: "FARE", CardMediaTypeID: &suica, Count: 12, Value: &fare},
			{ARTypeIdentifier: "CHARGE", Count: 2, Value: &charge},
		}),
		newTxn("GATE-002", 1, []entry{
			{ARTypeIdentifier: "FARE", CardMediaTypeID: &suica, Count: 5, Value: &fare},
		}),
		newTxn("GATE-001", 2, []entry{
			{ARTypeIdentifier: "FARE", CardMediaTypeID: &suica, Count: 15, Value: &fare},
		}),
	}

	step("Submitting %d audit register reports", len(reports))
	post("/v1/ar/auditRegister", map[string]any{"auditRegisterTxns": reports})

	step("Submitting a restarted device report (sequence number reset)")
	post("/v1/ar/auditRegister", map[string]any{"auditRegisterTxns": []txn{
		newTxn("GATE-001", 1, []entry{{ARTypeIdentifier: "FARE", CardMediaTypeID: &suica, Count: 1, Value: &fare}}),
	}})

	for _, job := range []string{"transactionTotal", "udArReconciliation", "deviceUsageMatch"} {
		step("Triggering %s batch", job)
		post(fmt.Sprintf("/v1/batch/%s?settlementDate=%s", job, *date), nil)
	}

	fmt.Printf("\n%s=== Demo complete ===%s\n", colorGreen, colorReset)
}

func newTxn(deviceID string, seq int64, entries []entry) txn {
	return txn{
		TransactionType:     "AUDIT_REGISTER",
		TransactionDateTime: time.Now().Format(time.RFC3339),
		EquipmentID:         "EQ-" + deviceID,
		DeviceID:            deviceID,
		BEID:                1,
		SeqNum:              seq,
		BusinessDate:        *date,
		Entries:             entries,
	}
}

func post(path string, body any) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			fail("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(http.MethodPost, *baseURL+path, reader)
	if err != nil {
		fail("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fail("POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		warn("POST %s returned %d: %s", path, resp.StatusCode, respBody)
		return
	}
	ok("POST %s returned %d", path, resp.StatusCode)
	if *verbose {
		fmt.Printf("    %s\n", respBody)
	}
}

func waitForEndpoint(url string, maxAttempts int, interval time.Duration) error {
	for i := 0; i < maxAttempts; i++ {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(interval)
	}
	return fmt.Errorf("timeout waiting for %s", url)
}

func step(format string, args ...any) {
	fmt.Printf("\n%s>>> %s%s\n", colorCyan, fmt.Sprintf(format, args...), colorReset)
}

func ok(format string, args ...any) {
	fmt.Printf("%s[OK]%s %s\n", colorGreen, colorReset, fmt.Sprintf(format, args...))
}

func warn(format string, args ...any) {
	fmt.Printf("%s[WARN]%s %s\n", colorYellow, colorReset, fmt.Sprintf(format, args...))
}

func fail(format string, args ...any) {
	fmt.Printf("%s[FAIL]%s %s\n", colorRed, colorReset, fmt.Sprintf(format, args...))
	os.Exit(1)
}
