package drive

import "encoding/json"

// MediaKind is the media type reported by the host for a volume's
// backing device, before it is collapsed into a Kind.
type MediaKind int

const (
	MediaUnknown MediaKind = iota
	MediaHDD
	MediaSSD
	MediaRemovable
	MediaNetwork
	MediaOptical
	MediaRAMDisk
)

// Kind is the canonical drive classification.
type Kind int

const (
	KindOther Kind = iota
	KindHDD
	KindSSD
)

// KindOf maps a native media kind onto a Kind. Everything that isn't a
// rotating or solid-state disk is KindOther.
func KindOf(m MediaKind) Kind {
	switch m {
	case MediaHDD:
		return KindHDD
	case MediaSSD:
		return KindSSD
	default:
		return KindOther
	}
}

func (k Kind) String() string {
	switch k {
	case KindHDD:
		return "HDD"
	case KindSSD:
		return "SSD"
	default:
		return "Other"
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}
