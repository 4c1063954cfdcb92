// Command tracker is the reporting-side agent: it plays the role of the
// driver device behind a tracking link, polling a position source on a fixed
// interval and posting each fix to the server's ingest endpoint. With no
// real device feed it random-walks from a seed point, which is enough to
// exercise the capture loop and the dashboard map end to end.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/geo"
	"github.com/adityadutt29/EmeLoc/internal/usecase"
	"github.com/adityadutt29/EmeLoc/pkg/logger"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "EmeLoc server base URL")
	ambulanceID := flag.String("ambulance", "", "Ambulance id to report for (required)")
	intervalMs := flag.Int("interval", 5000, "Capture interval in milliseconds")
	lat := flag.Float64("lat", 0, "Seed latitude for the simulated walk")
	lon := flag.Float64("lon", 0, "Seed longitude for the simulated walk")
	flag.Parse()

	log := logger.NewLogger()
	if *ambulanceID == "" {
		log.Fatal("Missing required -ambulance flag")
	}

	locator := geo.NewSimulated(*lat, *lon, time.Now().UnixNano())
	client := &http.Client{Timeout: 15 * time.Second}
	ingestURL := fmt.Sprintf("%s/api/track/%s/location", *server, *ambulanceID)

	capture := func(ctx context.Context, entityID string) error {
		opts := geo.DefaultRequestOptions()
		posCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()

		pos, err := locator.Current(posCtx, opts)
		if err != nil {
			return fmt.Errorf("position request failed: %w", err)
		}

		body, err := json.Marshal(map[string]float64{
			"latitude":  pos.Latitude,
			"longitude": pos.Longitude,
		})
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, "POST", ingestURL, bytes.NewBuffer(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to reach server: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("server rejected location with status %d", resp.StatusCode)
		}

		log.Debug("Location reported", "entityId", entityID,
			"lat", pos.Latitude, "lon", pos.Longitude)
		return nil
	}

	scheduler := usecase.NewTrackingScheduler(time.Duration(*intervalMs)*time.Millisecond, true, log)
	if err := scheduler.Start(*ambulanceID, capture); err != nil {
		log.Fatal("Failed to start capture loop", "error", err)
	}
	log.Info("Tracking started", "ambulanceId", *ambulanceID, "intervalMs", *intervalMs)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	scheduler.Stop()
	log.Info("Tracking stopped", "ambulanceId", *ambulanceID)
}
