package btaudio

import "fmt"

// CodecKind tells which numbering space a CodecID value belongs to.
type CodecKind uint8

// Codec numbering spaces.
const (
	KindA2DP   CodecKind = iota + 1 // A2DP media codec type.
	KindCore                        // HCI coding format.
	KindVendor                      // Vendor specific codec.
)

// String returns the human-readable string representation of a CodecKind.
func (k CodecKind) String() string {
	switch k {
	case KindA2DP:
		return "A2DP"
	case KindCore:
		return "CORE"
	case KindVendor:
		return "VENDOR"
	}
	return "UNKNOWN"
}

// CodecID identifies a codec. It is comparable and can be used as a map key.
type CodecID struct {
	Kind      CodecKind `json:"kind"`
	Value     uint16    `json:"value"`               // Assigned number, or vendor codec id.
	CompanyID uint16    `json:"companyId,omitempty"` // Vendor company id, vendor kind only.
}

// makeA2DPCodecID creates an A2DP media codec type identifier.
func makeA2DPCodecID(codecType uint16) CodecID {
	return CodecID{Kind: KindA2DP, Value: codecType}
}

// makeCoreCodecID creates an HCI coding format identifier.
func makeCoreCodecID(codingFormat uint16) CodecID {
	return CodecID{Kind: KindCore, Value: codingFormat}
}

// VendorCodecID creates a vendor specific codec identifier.
func VendorCodecID(companyID, codecID uint16) CodecID {
	return CodecID{Kind: KindVendor, Value: codecID, CompanyID: companyID}
}

// variables representing well known codecs.
var (
	SBC  = makeA2DPCodecID(0x00) //nolint:mnd
	MPEG = makeA2DPCodecID(0x01) //nolint:mnd
	AAC  = makeA2DPCodecID(0x02) //nolint:mnd
	CVSD = makeCoreCodecID(0x02) //nolint:mnd
	MSBC = makeCoreCodecID(0x05) //nolint:mnd
	LC3  = makeCoreCodecID(0x06) //nolint:mnd
)

// String returns the human-readable string representation of a CodecID.
func (id CodecID) String() string {
	switch id {
	case SBC:
		return "SBC"
	case MPEG:
		return "MPEG"
	case AAC:
		return "AAC"
	case CVSD:
		return "CVSD"
	case MSBC:
		return "MSBC"
	case LC3:
		return "LC3"
	}
	if id.Kind == KindVendor {
		return fmt.Sprintf("VENDOR(%04x:%04x)", id.CompanyID, id.Value)
	}
	return fmt.Sprintf("%s(%#x)", id.Kind, id.Value)
}

// IsVendor returns true if the CodecID is vendor specific.
func (id CodecID) IsVendor() bool {
	return id.Kind == KindVendor
}
