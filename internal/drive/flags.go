package drive

import (
	"encoding/json"
	"sort"
)

// FileSystemFlags is the volume attribute set returned by
// GetVolumeInformation. Bit values match the Win32 FILE_* constants.
type FileSystemFlags uint32

const (
	FlagCaseSensitiveSearch FileSystemFlags = 0x00000001
	FlagCasePreservedNames  FileSystemFlags = 0x00000002
	FlagUnicodeOnDisk       FileSystemFlags = 0x00000004
	FlagPersistentACLs      FileSystemFlags = 0x00000008
	FlagFileCompression     FileSystemFlags = 0x00000010
	FlagVolumeQuotas        FileSystemFlags = 0x00000020
	FlagSparseFiles         FileSystemFlags = 0x00000040
	FlagReparsePoints       FileSystemFlags = 0x00000080
	FlagVolumeIsCompressed  FileSystemFlags = 0x00008000
	FlagObjectIDs           FileSystemFlags = 0x00010000
	FlagEncryption          FileSystemFlags = 0x00020000
	FlagNamedStreams        FileSystemFlags = 0x00040000
	FlagReadOnlyVolume      FileSystemFlags = 0x00080000
	FlagSequentialWriteOnce FileSystemFlags = 0x00100000
	FlagTransactions        FileSystemFlags = 0x00200000
	FlagHardLinks           FileSystemFlags = 0x00400000
	FlagExtendedAttributes  FileSystemFlags = 0x00800000
	FlagOpenByFileID        FileSystemFlags = 0x01000000
	FlagUSNJournal          FileSystemFlags = 0x02000000
	FlagBlockRefcounting    FileSystemFlags = 0x08000000
	FlagSupportsSparseVDL   FileSystemFlags = 0x10000000
	FlagDAXVolume           FileSystemFlags = 0x20000000
	FlagGhosting            FileSystemFlags = 0x40000000
)

var flagNames = map[FileSystemFlags]string{
	FlagCaseSensitiveSearch: "case_sensitive_search",
	FlagCasePreservedNames:  "case_preserved_names",
	FlagUnicodeOnDisk:       "unicode_on_disk",
	FlagPersistentACLs:      "persistent_acls",
	FlagFileCompression:     "file_compression",
	FlagVolumeQuotas:        "volume_quotas",
	FlagSparseFiles:         "sparse_files",
	FlagReparsePoints:       "reparse_points",
	FlagVolumeIsCompressed:  "volume_is_compressed",
	FlagObjectIDs:           "object_ids",
	FlagEncryption:          "encryption",
	FlagNamedStreams:        "named_streams",
	FlagReadOnlyVolume:      "read_only_volume",
	FlagSequentialWriteOnce: "sequential_write_once",
	FlagTransactions:        "transactions",
	FlagHardLinks:           "hard_links",
	FlagExtendedAttributes:  "extended_attributes",
	FlagOpenByFileID:        "open_by_file_id",
	FlagUSNJournal:          "usn_journal",
	FlagBlockRefcounting:    "block_refcounting",
	FlagSupportsSparseVDL:   "sparse_vdl",
	FlagDAXVolume:           "dax_volume",
	FlagGhosting:            "ghosting",
}

// Has reports whether every bit in flag is set.
func (f FileSystemFlags) Has(flag FileSystemFlags) bool {
	return flag != 0 && f&flag == flag
}

func (f FileSystemFlags) CaseSensitive() bool       { return f.Has(FlagCaseSensitiveSearch) }
func (f FileSystemFlags) SupportsCompression() bool { return f.Has(FlagFileCompression) }
func (f FileSystemFlags) SupportsQuotas() bool      { return f.Has(FlagVolumeQuotas) }
func (f FileSystemFlags) SupportsEncryption() bool  { return f.Has(FlagEncryption) }
func (f FileSystemFlags) SupportsHardLinks() bool   { return f.Has(FlagHardLinks) }
func (f FileSystemFlags) HasUSNJournal() bool       { return f.Has(FlagUSNJournal) }
func (f FileSystemFlags) ReadOnly() bool            { return f.Has(FlagReadOnlyVolume) }

// Names returns the names of the known flags that are set, sorted.
// Unknown bits are ignored.
func (f FileSystemFlags) Names() []string {
	names := make([]string, 0, len(flagNames))
	for flag, name := range flagNames {
		if f.Has(flag) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (f FileSystemFlags) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Names())
}
