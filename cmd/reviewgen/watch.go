package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mlorentedev/hotelreviews/internal/job"
	"github.com/mlorentedev/hotelreviews/internal/progress"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serverURL string

//nolint:gochecknoglobals // Cobra boilerplate
var apiKey string

//nolint:gochecknoglobals // Cobra boilerplate
var pollInterval time.Duration

//nolint:gochecknoglobals // Cobra boilerplate
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the generation run of a hotelreviews server",
	Long: `Poll /api/generation/status of a running hotelreviews server and draw
its progress until the run finishes.

Example:
  reviewgen watch
  reviewgen watch --url http://gen.internal:8090 --api-key secret --interval 2s`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&serverURL, "url", "http://localhost:8090", "API base URL")
	watchCmd.Flags().StringVar(&apiKey, "api-key", "", "API key (default $HOTELREVIEWS_API_KEY)")
	watchCmd.Flags().DurationVar(&pollInterval, "interval", time.Second, "Polling interval")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	key := apiKey
	if key == "" {
		key = os.Getenv("HOTELREVIEWS_API_KEY")
	}
	client := &statusClient{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(serverURL, "/"),
		apiKey:  key,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	bar := progress.New(out, 0, "reviews")
	status, err := follow(ctx, client.Status, bar, pollInterval)
	if err != nil {
		return err
	}

	switch status.Phase {
	case job.PhaseIdle:
		fmt.Fprintln(out, "No generation has been started on this server.")
	case job.PhaseFailed:
		bar.Fail(fmt.Sprintf("run %s failed: %s", status.RunID, status.Error))
		return errors.Errorf("run %s failed: %s", status.RunID, status.Error)
	default:
		bar.Complete(fmt.Sprintf("run %s generated %d reviews", status.RunID, status.Produced))
		for _, o := range status.Outputs {
			fmt.Fprintf(out, "  %s\n", o)
		}
	}
	return nil
}

type statusFunc func(ctx context.Context) (job.Status, error)

// follow polls until the run stops, redrawing bar whenever the produced
// count moves.
func follow(ctx context.Context, poll statusFunc, bar *progress.Bar, every time.Duration) (job.Status, error) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	drawn := false
	for {
		status, err := poll(ctx)
		if err != nil {
			return job.Status{}, err
		}
		if status.Total > 0 {
			bar.SetTotal(status.Total)
		}
		if !drawn || status.Produced != bar.Current() {
			bar.Update(status.Produced)
			drawn = true
		}
		if !status.Running {
			return status, nil
		}

		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case <-ticker.C:
		}
	}
}

type statusClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func (c *statusClient) Status(ctx context.Context) (job.Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/generation/status", nil)
	if err != nil {
		return job.Status{}, errors.Wrap(err, "creating status request")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return job.Status{}, errors.Wrap(err, "fetching status")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return job.Status{}, errors.Errorf("status endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var status job.Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return job.Status{}, errors.Wrap(err, "decoding status")
	}
	return status, nil
}
