package facades

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/usersvc/usersvc/internal/logger"
	"github.com/usersvc/usersvc/internal/models"
)

const (
	// DefaultMetadataBaseURL is the well-known instance metadata address.
	DefaultMetadataBaseURL = "http://169.254.169.254"

	// MetadataTimeout bounds each metadata request. Outside a cloud
	// environment the address is unroutable and the fetch must give up
	// quickly.
	MetadataTimeout = 2 * time.Second

	instanceIDPath       = "/latest/meta-data/instance-id"
	availabilityZonePath = "/latest/meta-data/placement/availability-zone"

	unknownValue = "unknown"
)

// InstanceMetadataFacade reports instance identity via the metadata
// HTTP endpoint.
type InstanceMetadataFacade struct {
	baseURL string
	client  *http.Client
}

// NewInstanceMetadataFacade creates a facade for the given metadata
// base URL. An empty baseURL selects the well-known address.
func NewInstanceMetadataFacade(baseURL string) *InstanceMetadataFacade {
	if baseURL == "" {
		baseURL = DefaultMetadataBaseURL
	}
	return &InstanceMetadataFacade{
		baseURL: baseURL,
		client:  &http.Client{Timeout: MetadataTimeout},
	}
}

// GetServerInfo collects instance id, availability zone, hostname, and
// a fresh timestamp. Metadata failures degrade each field to "unknown"
// independently; the method never fails.
func (f *InstanceMetadataFacade) GetServerInfo(ctx context.Context) models.ServerInfo {
	instanceID := unknownValue
	availabilityZone := unknownValue

	// The two lookups are independent, fetch them concurrently.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if v, err := f.fetch(ctx, instanceIDPath); err == nil {
			instanceID = v
		}
	}()
	go func() {
		defer wg.Done()
		if v, err := f.fetch(ctx, availabilityZonePath); err == nil {
			availabilityZone = v
		}
	}()
	wg.Wait()

	hostname, err := os.Hostname()
	if err != nil {
		logger.Log.Errorw("failed to read hostname", "error", err)
		hostname = unknownValue
	}

	return models.ServerInfo{
		InstanceID:       instanceID,
		AvailabilityZone: availabilityZone,
		Hostname:         hostname,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}
}

func (f *InstanceMetadataFacade) fetch(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Infow("metadata service not available", "path", path, "error", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Infow("metadata service returned non-OK status", "path", path, "status", resp.StatusCode)
		return "", fmt.Errorf("metadata request %s: status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
