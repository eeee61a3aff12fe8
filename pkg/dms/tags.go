package dms

import (
	"context"

	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
)

// TagManager covers resource tagging.
type TagManager struct {
	manager
}

// NewTagManager creates a TagManager over the given gateway.
func NewTagManager(client dmsapi.Invoker) *TagManager {
	return &TagManager{manager{client: client}}
}

// AddTags attaches tags to the resource with the given ARN.
func (m *TagManager) AddTags(ctx context.Context, resourceARN string, tags []map[string]any) (*Result, error) {
	_, err := m.client.CallAPI(ctx, "add_tags_to_resource", map[string]any{
		"ResourceArn": resourceARN,
		"Tags":        tags,
	})
	if err != nil {
		return nil, err
	}
	return okResult(map[string]any{
		"message":      "Tags added successfully",
		"tags_added":   len(tags),
		"resource_arn": resourceARN,
	}), nil
}

// RemoveTags detaches the given tag keys from the resource.
func (m *TagManager) RemoveTags(ctx context.Context, resourceARN string, tagKeys []string) (*Result, error) {
	_, err := m.client.CallAPI(ctx, "remove_tags_from_resource", map[string]any{
		"ResourceArn": resourceARN,
		"TagKeys":     tagKeys,
	})
	if err != nil {
		return nil, err
	}
	return okResult(map[string]any{
		"message":      "Tags removed successfully",
		"tags_removed": len(tagKeys),
		"resource_arn": resourceARN,
	}), nil
}

// ListTags lists the tags on a resource. The underlying API does not
// paginate.
func (m *TagManager) ListTags(ctx context.Context, resourceARN string) (*Result, error) {
	resp, err := m.client.CallAPI(ctx, "list_tags_for_resource", map[string]any{
		"ResourceArn": resourceARN,
	})
	if err != nil {
		return nil, err
	}
	tags := mapSlice(resp["TagList"])
	return okResult(map[string]any{
		"count":        len(tags),
		"tags":         formatResources(tags),
		"resource_arn": resourceARN,
	}), nil
}
