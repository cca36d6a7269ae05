package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalEvents   = 6000 // Total number of unique sort events to generate
	eventsPerDay  = 1500 // Events per calendar day; totalEvents must be divisible by this
	countsPerStat = 500  // Per-day count for each of the three stat columns
)

var (
	dates     = []string{"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04"}
	itemTypes = []string{"can", "plastic_bottle", "paper", "food_waste"}
	// Destination is derived from the item type the way the sorter routes items.
	destinations = map[string]string{
		"can":            "recycling",
		"plastic_bottle": "recycling",
		"paper":          "recycling",
		"food_waste":     "garbage",
	}
)

// ### End - fixed configs

type sortEvent struct {
	ID              string  `json:"id"`
	Timestamp       string  `json:"timestamp"`
	ItemType        string  `json:"item_type"`
	Confidence      float64 `json:"confidence"`
	SortDestination string  `json:"sort_destination"`
}

type dailyStat struct {
	Date           string `json:"date"`
	CanCount       int    `json:"can_count"`
	RecyclingCount int    `json:"recycling_count"`
	GarbageCount   int    `json:"garbage_count"`
}

type uploadPayload struct {
	APIKey    string      `json:"api_key"`
	Timestamp string      `json:"timestamp"`
	Events    []sortEvent `json:"events,omitempty"`
	Stats     []dailyStat `json:"stats,omitempty"`
}

type uploadResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Error         string `json:"error"`
	JSONGenerated *bool  `json:"json_generated"`
}

type totalsSummary struct {
	TotalCans      int64 `json:"total_cans"`
	TotalRecycling int64 `json:"total_recycling"`
	TotalGarbage   int64 `json:"total_garbage"`
	GrandTotal     int64 `json:"grand_total"`
}

type batchToSend struct {
	batchIndex int
	jsonData   []byte
	isOriginal bool
}

// main runs the e2e scenario: 001_basic_upload_snapshot
//
// This scenario tests the end-to-end flow of telemetry batch upload, durable
// storage, and snapshot artifact regeneration. It sends 6,000 sort events and
// one daily stat row per day to the upload API, with configurable duplicate
// batches to test upsert idempotency.
//
// What it tests:
//   - Batch ingestion via POST /api/upload with the shared API key
//   - Re-submitted batches overwrite by event ID instead of double counting
//   - Daily stat totals are recomputed server-side from the three counts
//   - Snapshot artifacts (totals.json, daily.json, events.json) are published
//     to the snapshot directory after every accepted upload
//   - The live totals endpoint agrees with the published totals artifact
//
// Expected results:
//   - All batches (original + duplicates) return 200 with success=true
//   - Total counts reflect only the unique stat rows: 500 per column per day,
//     grand total 6000 across 4 days
//   - events.json holds the 50 newest events, newest first
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080"               // Base URL of the sorting analytics API server
	apiKey := "ws_6f28a91e7d3c4b5f8a2e9d0c7b6a5f4"   // Shared API key, must match ingest.api_key in configs.yml
	eventsPerBatch := 100                            // Number of sort events per batch. Original batches = totalEvents / eventsPerBatch
	parallel := 2                                    // Number of concurrent upload requests to send
	totalDuplicates := 30                            // Total number of duplicate batches to send across all batches
	snapshotDir := "static/api"                      // Snapshot directory path relative to project root
	wantCleanSnapshotDir := true                     // If true, clean up snapshot directory before running scenario

	if totalEvents%eventsPerBatch != 0 {
		fmt.Fprintf(os.Stderr, "ERROR: totalEvents (%d) must be divisible by eventsPerBatch (%d)\n", totalEvents, eventsPerBatch)
		os.Exit(1)
	}
	if totalEvents%eventsPerDay != 0 || totalEvents/eventsPerDay != len(dates) {
		fmt.Fprintf(os.Stderr, "ERROR: totalEvents (%d) must be eventsPerDay (%d) times %d dates\n", totalEvents, eventsPerDay, len(dates))
		os.Exit(1)
	}

	batchCount := totalEvents / eventsPerBatch

	// Get project root directory by looking for go.mod file
	projectRoot, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to get current working directory: %v\n", err)
		os.Exit(1)
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(projectRoot, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			fmt.Fprintf(os.Stderr, "ERROR: Could not find go.mod file. Please run from project root\n")
			os.Exit(1)
		}
		projectRoot = parent
	}

	snapshotPath, err := filepath.Abs(filepath.Join(projectRoot, snapshotDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to resolve snapshot path: %v\n", err)
		os.Exit(1)
	}

	if wantCleanSnapshotDir {
		fmt.Printf("Cleaning snapshot directory: %s\n", snapshotPath)
		if err := os.RemoveAll(snapshotPath); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to clean snapshot directory: %v\n", err)
		}
		fmt.Println()
	}

	fmt.Println("Starting e2e scenario: 001_basic_upload_snapshot")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("EVENTS_PER_BATCH: %d\n", eventsPerBatch)
	fmt.Printf("BATCH_COUNT: %d\n", batchCount)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("TOTAL_DUPLICATES: %d\n", totalDuplicates)
	fmt.Printf("SNAPSHOT_PATH: %s\n", snapshotPath)
	fmt.Printf("TOTAL_EVENTS: %d\n", totalEvents)
	fmt.Println()

	// Generate all events
	fmt.Printf("Generating all %d events...\n", totalEvents)
	events := generateAllEvents()
	fmt.Printf("Generated %d events\n", len(events))
	fmt.Println()

	// Generate all batches (original + duplicates) and interleave duplicates
	fmt.Printf("Generating all batches (original + duplicates)...\n")
	batchesToSend := make([]batchToSend, 0, batchCount+totalDuplicates)

	for batchIndex := 1; batchIndex <= batchCount; batchIndex++ {
		jsonData, err := generateBatchJSON(batchIndex, eventsPerBatch, events, apiKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to generate JSON for batch %d: %v\n", batchIndex, err)
			os.Exit(1)
		}
		batchesToSend = append(batchesToSend, batchToSend{
			batchIndex: batchIndex,
			jsonData:   jsonData,
			isOriginal: true,
		})
	}

	// Distribute duplicate batches round-robin; duplicates reuse the original
	// JSON so they carry the same event IDs.
	duplicatesAdded := 0
	batchIndex := 1
	for duplicatesAdded < totalDuplicates {
		batchesToSend = append(batchesToSend, batchToSend{
			batchIndex: batchIndex,
			jsonData:   batchesToSend[batchIndex-1].jsonData,
			isOriginal: false,
		})
		duplicatesAdded++
		batchIndex++
		if batchIndex > batchCount {
			batchIndex = 1
		}
	}

	fmt.Printf("Generated %d batches to send (%d original + %d duplicates)\n",
		len(batchesToSend), batchCount, len(batchesToSend)-batchCount)
	fmt.Println()

	// Create worker pool for parallel batch sending
	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errors []error
	var totalBatchesSent int64
	var duplicateBatchSent int64
	var snapshotRefreshed int64

	for _, batch := range batchesToSend {
		wg.Add(1)
		workerChan <- struct{}{}

		go func(b batchToSend) {
			defer wg.Done()
			defer func() { <-workerChan }()

			resp, err := sendBatch(baseURL, b)
			if err != nil {
				mu.Lock()
				errors = append(errors, fmt.Errorf("batch %d: %w", b.batchIndex, err))
				mu.Unlock()
				fmt.Fprintf(os.Stderr, "ERROR: Batch %d failed: %v\n", b.batchIndex, err)
				return
			}

			atomic.AddInt64(&totalBatchesSent, 1)
			if !b.isOriginal {
				atomic.AddInt64(&duplicateBatchSent, 1)
			}
			if resp.JSONGenerated != nil && *resp.JSONGenerated {
				atomic.AddInt64(&snapshotRefreshed, 1)
			}
		}(batch)
	}
	wg.Wait()

	fmt.Println()
	if len(errors) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d batch sends failed\n", len(errors))
		os.Exit(1)
	}

	// Send the per-day stat rows once each; totals come only from these.
	fmt.Println("Sending daily stat rows...")
	stats := make([]dailyStat, 0, len(dates))
	for _, date := range dates {
		stats = append(stats, dailyStat{
			Date:           date,
			CanCount:       countsPerStat,
			RecyclingCount: countsPerStat,
			GarbageCount:   countsPerStat,
		})
	}
	statPayload, err := json.Marshal(uploadPayload{
		APIKey:    apiKey,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Stats:     stats,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to generate stats payload: %v\n", err)
		os.Exit(1)
	}
	if _, err := sendBatch(baseURL, batchToSend{batchIndex: 0, jsonData: statPayload}); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Stats upload failed: %v\n", err)
		os.Exit(1)
	}

	// Verify the live totals endpoint against the expected unique counts.
	wantPerColumn := int64(countsPerStat * len(dates))
	wantGrandTotal := 3 * wantPerColumn

	totals, err := fetchTotals(baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to fetch totals: %v\n", err)
		os.Exit(1)
	}
	if totals.TotalCans != wantPerColumn || totals.TotalRecycling != wantPerColumn ||
		totals.TotalGarbage != wantPerColumn || totals.GrandTotal != wantGrandTotal {
		fmt.Fprintf(os.Stderr, "ERROR: Totals mismatch: got %+v, want %d per column and grand total %d\n",
			totals, wantPerColumn, wantGrandTotal)
		os.Exit(1)
	}

	// Verify the snapshot artifacts exist and the totals artifact agrees.
	for _, artifact := range []string{"totals.json", "daily.json", "events.json"} {
		if _, err := os.Stat(filepath.Join(snapshotPath, artifact)); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Missing snapshot artifact %s: %v\n", artifact, err)
			os.Exit(1)
		}
	}
	artifactData, err := os.ReadFile(filepath.Join(snapshotPath, "totals.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read totals artifact: %v\n", err)
		os.Exit(1)
	}
	var artifactTotals totalsSummary
	if err := json.Unmarshal(artifactData, &artifactTotals); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to decode totals artifact: %v\n", err)
		os.Exit(1)
	}
	if artifactTotals != *totals {
		fmt.Fprintf(os.Stderr, "ERROR: totals.json (%+v) disagrees with /api/stats/totals (%+v)\n",
			artifactTotals, *totals)
		os.Exit(1)
	}

	fmt.Println("All batches completed successfully")
	fmt.Println("=== Statistics ===")
	fmt.Printf("Total batches sent: %d\n", atomic.LoadInt64(&totalBatchesSent))
	fmt.Printf("Duplicate batch sent: %d\n", atomic.LoadInt64(&duplicateBatchSent))
	fmt.Printf("Snapshot refreshes reported: %d\n", atomic.LoadInt64(&snapshotRefreshed))
	fmt.Printf("Grand total: %d\n", totals.GrandTotal)
	fmt.Println("Scenario completed successfully")
}

func generateAllEvents() []sortEvent {
	events := make([]sortEvent, 0, totalEvents)
	for i := 0; i < totalEvents; i++ {
		dayIndex := i / eventsPerDay
		itemType := itemTypes[i%len(itemTypes)]

		// Deterministic intra-day timestamp and confidence.
		seconds := i % 86400
		timestamp := fmt.Sprintf("%sT%02d:%02d:%02d",
			dates[dayIndex], seconds/3600, (seconds/60)%60, seconds%60)
		confidence := 0.50 + float64(i%50)/100.0

		events = append(events, sortEvent{
			ID:              fmt.Sprintf("evt-%06d", i),
			Timestamp:       timestamp,
			ItemType:        itemType,
			Confidence:      confidence,
			SortDestination: destinations[itemType],
		})
	}
	return events
}

func generateBatchJSON(batchIndex, batchSize int, events []sortEvent, apiKey string) ([]byte, error) {
	startIndex := (batchIndex - 1) * batchSize
	return json.Marshal(uploadPayload{
		APIKey:    apiKey,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Events:    events[startIndex : startIndex+batchSize],
	})
}

func sendBatch(baseURL string, batch batchToSend) (*uploadResponse, error) {
	req, err := http.NewRequest("POST", baseURL+"/api/upload", bytes.NewReader(batch.jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !decoded.Success {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, decoded.Error)
	}
	return &decoded, nil
}

func fetchTotals(baseURL string) (*totalsSummary, error) {
	resp, err := http.Get(baseURL + "/api/stats/totals")
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	var totals totalsSummary
	if err := json.NewDecoder(resp.Body).Decode(&totals); err != nil {
		return nil, fmt.Errorf("failed to decode totals: %w", err)
	}
	return &totals, nil
}
