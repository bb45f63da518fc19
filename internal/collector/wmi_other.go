//go:build !windows

package collector

import (
	"context"
	"fmt"
)

// QueryTopic validates the topic name and reports ErrUnsupported.
func QueryTopic(_ context.Context, name string) (any, error) {
	if _, ok := wmiTopics[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, name)
	}
	return nil, ErrUnsupported
}
