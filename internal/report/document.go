package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nhdewitt/drivescope/internal/drive"
	"github.com/nhdewitt/drivescope/internal/protocol"
)

// DocumentWriter prints each record as its own indented JSON envelope.
type DocumentWriter struct {
	out      io.Writer
	errOut   io.Writer
	hostname string
	logger   *slog.Logger

	now     func() time.Time
	marshal func(v any) ([]byte, error)
}

func NewDocumentWriter(out, errOut io.Writer, hostname string, logger *slog.Logger) *DocumentWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentWriter{
		out:      out,
		errOut:   errOut,
		hostname: hostname,
		logger:   logger,
		now:      time.Now,
		marshal:  marshalIndent,
	}
}

func marshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Write prints one document per record. A record that fails to serialize
// is reported on the error stream and skipped; only a failing output
// writer stops the loop.
func (d *DocumentWriter) Write(records []drive.Record) error {
	for _, r := range records {
		if err := d.WriteMetric(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteMetric prints a single payload wrapped in an Envelope.
func (d *DocumentWriter) WriteMetric(m protocol.Metric) error {
	env := protocol.Wrap(m, d.hostname, d.now())

	b, err := d.marshal(env)
	if err != nil {
		d.logger.Error("serializing document failed",
			slog.String("type", env.Type),
			slog.Any("error", err),
		)
		fmt.Fprintf(d.errOut, "error: serializing %s document: %v\n", env.Type, err)
		return nil
	}

	b = append(b, '\n')
	if _, err := d.out.Write(b); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}
