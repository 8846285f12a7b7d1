package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cloudvigil/zombiescan/internal/domain/port"
)

// InventorySource implements port.FeatureSource on top of an exported
// inventory file. Provider-agnostic by construction: anything that can
// dump its resource inventory as JSON can feed the scanner.
type InventorySource struct {
	path string
}

// NewInventorySource creates a source reading from the given JSON file.
func NewInventorySource(path string) *InventorySource {
	return &InventorySource{path: path}
}

type inventoryRecord struct {
	Tags         map[string]string `json:"tags"`
	ResourceID   string            `json:"resource_id"`
	ResourceType string            `json:"resource_type"`
	Region       string            `json:"region"`
	Name         string            `json:"name"`
	InstanceType string            `json:"instance_type"`
	State        string            `json:"state"`
	LaunchedAt   time.Time         `json:"launched_at"`
}

// Discover reads the inventory file and returns the resources in the
// requested regions. An empty regions slice matches everything.
func (s *InventorySource) Discover(ctx context.Context, regions []string) ([]port.DiscoveredResource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read inventory %s: %w", s.path, err)
	}

	var records []inventoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse inventory %s: %w", s.path, err)
	}

	wanted := make(map[string]bool, len(regions))
	for _, region := range regions {
		wanted[region] = true
	}

	resources := make([]port.DiscoveredResource, 0, len(records))
	for _, rec := range records {
		if len(wanted) > 0 && !wanted[rec.Region] {
			continue
		}
		resources = append(resources, port.DiscoveredResource{
			ResourceID:   rec.ResourceID,
			ResourceType: rec.ResourceType,
			Region:       rec.Region,
			Name:         rec.Name,
			InstanceType: rec.InstanceType,
			State:        rec.State,
			LaunchedAt:   rec.LaunchedAt,
			Tags:         rec.Tags,
		})
	}
	return resources, nil
}
