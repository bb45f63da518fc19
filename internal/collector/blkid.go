package collector

import (
	"strings"

	"github.com/google/uuid"
)

// parseBlkid reads the KEY="value" pairs blkid prints for one device:
//
//	/dev/sda1: UUID="0f3c…" BLOCK_SIZE="4096" TYPE="ext4" PARTUUID="…"
//
// Values may contain spaces. Later duplicates are ignored.
func parseBlkid(out string) map[string]string {
	tags := make(map[string]string)

	line := out
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if i := strings.Index(line, ": "); i >= 0 && !strings.Contains(line[:i], `="`) {
		line = line[i+2:]
	}

	for {
		line = strings.TrimLeft(line, " \t")
		eq := strings.Index(line, `="`)
		if eq <= 0 {
			break
		}
		key := line[:eq]
		rest := line[eq+2:]

		end := strings.IndexByte(rest, '"')
		if end < 0 {
			break
		}
		if _, ok := tags[key]; !ok {
			tags[key] = rest[:end]
		}
		line = rest[end+1:]
	}

	return tags
}

// normalizeUUID renders RFC 4122 identifiers in canonical lowercase form.
// Anything else, such as a FAT volume serial "ABCD-1234", is returned as is.
func normalizeUUID(s string) string {
	s = strings.TrimSpace(s)
	if u, err := uuid.Parse(s); err == nil {
		return u.String()
	}
	return s
}
