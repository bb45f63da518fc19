//go:build windows

package collector

import (
	"context"
	"fmt"

	"github.com/yusufpapurcu/wmi"
)

// QueryTopic runs the query for one topic over its own session and returns
// a pointer to the slice of rows.
func QueryTopic(ctx context.Context, name string) (any, error) {
	t, ok := wmiTopics[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := openSWbemServices()
	if err != nil {
		return nil, fmt.Errorf("connecting to WMI: %w", err)
	}
	defer s.Close()

	dst := t.rows()
	q := wmi.CreateQuery(dst, "")
	if err := s.Query(q, dst, nil, t.Namespace); err != nil {
		return nil, fmt.Errorf("querying %s in %s: %w", t.Class, t.Namespace, err)
	}

	return dst, nil
}
