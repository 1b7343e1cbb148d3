package net

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"MindCanvas/internal/analysis"
)

var analyzeClient = &http.Client{Timeout: 10 * time.Second}

// Analyze posts the finalized phase metrics to a remote insight service and
// decodes the report it sends back.
func Analyze(addr string, payload analysis.Payload) (*analysis.Report, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	url := fmt.Sprintf("http://%s/api/analyze", addr)
	resp, err := analyzeClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return nil, fmt.Errorf("insight service returned %d: %s", resp.StatusCode, errBody.Error)
	}

	var report analysis.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}
