package metadata

/**
 * @brief Hardware format of texture texels and render-target attachments.
 */
type Format int

const (
	FormatUndefined Format = iota

	/* Alpha channel color formats */
	FormatA8UNorm

	/* Red channel color formats */
	FormatR8UNorm
	FormatR8SNorm
	FormatR8UInt
	FormatR8SInt
	FormatR16UNorm
	FormatR16Float
	FormatR32UInt
	FormatR32SInt
	FormatR32Float

	/* RG color formats */
	FormatRG8UNorm
	FormatRG16Float
	FormatRG32UInt
	FormatRG32SInt
	FormatRG32Float

	/* RGB color formats */
	FormatRGB32UInt
	FormatRGB32SInt
	FormatRGB32Float

	/* RGBA color formats */
	FormatRGBA8UNorm
	FormatRGBA8UNormSRGB
	FormatRGBA8UInt
	FormatRGBA16Float
	FormatRGBA32UInt
	FormatRGBA32SInt
	FormatRGBA32Float

	/* BGRA color formats */
	FormatBGRA8UNorm
	FormatBGRA8UNormSRGB

	/* Packed formats */
	FormatRGB10A2UNorm
	FormatR11G11B10Float

	/* Depth-stencil formats */
	FormatD16UNorm
	FormatD24UNormS8UInt
	FormatD32Float
	FormatD32FloatS8X24UInt

	/* Block compression formats */
	FormatBC1UNorm
	FormatBC1UNormSRGB
	FormatBC2UNorm
	FormatBC3UNorm
	FormatBC4UNorm
	FormatBC5UNorm

	formatCount
)

/** @brief Property flags of a format. */
type FormatFlags uint32

const (
	FormatHasDepth FormatFlags = 1 << iota
	FormatHasStencil
	FormatIsColor
	FormatIsCompressed
	FormatIsNormalized
	FormatIsInteger
	FormatIsUnsigned
	FormatIsPacked
	FormatIsSRGB
	FormatSupportsRenderTarget

	FormatHasDepthStencil = FormatHasDepth | FormatHasStencil
)

/**
 * @brief Static attributes of a format.
 */
type FormatAttributes struct {
	/** @brief Size of one texel, or of one block for compressed formats, in bits. */
	BitSize uint32
	/** @brief Block width, 1 for uncompressed formats. */
	BlockWidth uint32
	/** @brief Block height, 1 for uncompressed formats. */
	BlockHeight uint32
	/** @brief Number of components (1 to 4), 0 for undefined. */
	Components uint32
	Flags      FormatFlags
}

const (
	colorRT       = FormatIsColor | FormatSupportsRenderTarget
	colorUNormRT  = colorRT | FormatIsNormalized | FormatIsUnsigned
	colorSNormRT  = colorRT | FormatIsNormalized
	colorUIntRT   = colorRT | FormatIsInteger | FormatIsUnsigned
	colorSIntRT   = colorRT | FormatIsInteger
	depthFlags    = FormatHasDepth | FormatSupportsRenderTarget
	depthStFlags  = FormatHasDepthStencil | FormatSupportsRenderTarget
	compressedCol = FormatIsColor | FormatIsCompressed | FormatIsNormalized | FormatIsUnsigned
)

var formatAttribs = [formatCount]FormatAttributes{
	FormatUndefined: {0, 0, 0, 0, 0},

	FormatA8UNorm: {8, 1, 1, 1, colorUNormRT},

	FormatR8UNorm:  {8, 1, 1, 1, colorUNormRT},
	FormatR8SNorm:  {8, 1, 1, 1, colorSNormRT},
	FormatR8UInt:   {8, 1, 1, 1, colorUIntRT},
	FormatR8SInt:   {8, 1, 1, 1, colorSIntRT},
	FormatR16UNorm: {16, 1, 1, 1, colorUNormRT},
	FormatR16Float: {16, 1, 1, 1, colorRT},
	FormatR32UInt:  {32, 1, 1, 1, colorUIntRT},
	FormatR32SInt:  {32, 1, 1, 1, colorSIntRT},
	FormatR32Float: {32, 1, 1, 1, colorRT},

	FormatRG8UNorm:  {16, 1, 1, 2, colorUNormRT},
	FormatRG16Float: {32, 1, 1, 2, colorRT},
	FormatRG32UInt:  {64, 1, 1, 2, colorUIntRT},
	FormatRG32SInt:  {64, 1, 1, 2, colorSIntRT},
	FormatRG32Float: {64, 1, 1, 2, colorRT},

	FormatRGB32UInt:  {96, 1, 1, 3, FormatIsColor | FormatIsInteger | FormatIsUnsigned},
	FormatRGB32SInt:  {96, 1, 1, 3, FormatIsColor | FormatIsInteger},
	FormatRGB32Float: {96, 1, 1, 3, FormatIsColor},

	FormatRGBA8UNorm:     {32, 1, 1, 4, colorUNormRT},
	FormatRGBA8UNormSRGB: {32, 1, 1, 4, colorUNormRT | FormatIsSRGB},
	FormatRGBA8UInt:      {32, 1, 1, 4, colorUIntRT},
	FormatRGBA16Float:    {64, 1, 1, 4, colorRT},
	FormatRGBA32UInt:     {128, 1, 1, 4, colorUIntRT},
	FormatRGBA32SInt:     {128, 1, 1, 4, colorSIntRT},
	FormatRGBA32Float:    {128, 1, 1, 4, colorRT},

	FormatBGRA8UNorm:     {32, 1, 1, 4, colorUNormRT},
	FormatBGRA8UNormSRGB: {32, 1, 1, 4, colorUNormRT | FormatIsSRGB},

	FormatRGB10A2UNorm:   {32, 1, 1, 4, colorUNormRT | FormatIsPacked},
	FormatR11G11B10Float: {32, 1, 1, 3, colorRT | FormatIsPacked},

	FormatD16UNorm:          {16, 1, 1, 1, depthFlags | FormatIsNormalized | FormatIsUnsigned},
	FormatD24UNormS8UInt:    {32, 1, 1, 2, depthStFlags | FormatIsNormalized | FormatIsUnsigned | FormatIsPacked},
	FormatD32Float:          {32, 1, 1, 1, depthFlags},
	FormatD32FloatS8X24UInt: {64, 1, 1, 2, depthStFlags | FormatIsPacked},

	FormatBC1UNorm:     {64, 4, 4, 4, compressedCol},
	FormatBC1UNormSRGB: {64, 4, 4, 4, compressedCol | FormatIsSRGB},
	FormatBC2UNorm:     {128, 4, 4, 4, compressedCol},
	FormatBC3UNorm:     {128, 4, 4, 4, compressedCol},
	FormatBC4UNorm:     {64, 4, 4, 1, compressedCol},
	FormatBC5UNorm:     {128, 4, 4, 2, compressedCol},
}

var formatNames = [formatCount]string{
	FormatUndefined:         "Undefined",
	FormatA8UNorm:           "A8UNorm",
	FormatR8UNorm:           "R8UNorm",
	FormatR8SNorm:           "R8SNorm",
	FormatR8UInt:            "R8UInt",
	FormatR8SInt:            "R8SInt",
	FormatR16UNorm:          "R16UNorm",
	FormatR16Float:          "R16Float",
	FormatR32UInt:           "R32UInt",
	FormatR32SInt:           "R32SInt",
	FormatR32Float:          "R32Float",
	FormatRG8UNorm:          "RG8UNorm",
	FormatRG16Float:         "RG16Float",
	FormatRG32UInt:          "RG32UInt",
	FormatRG32SInt:          "RG32SInt",
	FormatRG32Float:         "RG32Float",
	FormatRGB32UInt:         "RGB32UInt",
	FormatRGB32SInt:         "RGB32SInt",
	FormatRGB32Float:        "RGB32Float",
	FormatRGBA8UNorm:        "RGBA8UNorm",
	FormatRGBA8UNormSRGB:    "RGBA8UNorm_sRGB",
	FormatRGBA8UInt:         "RGBA8UInt",
	FormatRGBA16Float:       "RGBA16Float",
	FormatRGBA32UInt:        "RGBA32UInt",
	FormatRGBA32SInt:        "RGBA32SInt",
	FormatRGBA32Float:       "RGBA32Float",
	FormatBGRA8UNorm:        "BGRA8UNorm",
	FormatBGRA8UNormSRGB:    "BGRA8UNorm_sRGB",
	FormatRGB10A2UNorm:      "RGB10A2UNorm",
	FormatR11G11B10Float:    "R11G11B10Float",
	FormatD16UNorm:          "D16UNorm",
	FormatD24UNormS8UInt:    "D24UNormS8UInt",
	FormatD32Float:          "D32Float",
	FormatD32FloatS8X24UInt: "D32FloatS8X24UInt",
	FormatBC1UNorm:          "BC1UNorm",
	FormatBC1UNormSRGB:      "BC1UNorm_sRGB",
	FormatBC2UNorm:          "BC2UNorm",
	FormatBC3UNorm:          "BC3UNorm",
	FormatBC4UNorm:          "BC4UNorm",
	FormatBC5UNorm:          "BC5UNorm",
}

func (f Format) String() string {
	if f < 0 || f >= formatCount {
		return "Unknown"
	}
	return formatNames[f]
}

// ParseFormat is the inverse of Format.String.
func ParseFormat(name string) (Format, bool) {
	for i, n := range formatNames {
		if n == name {
			return Format(i), true
		}
	}
	return FormatUndefined, false
}

// GetFormatAttribs returns the attributes of the format, or the attributes of
// FormatUndefined for unknown values.
// Formats returns every defined format except FormatUndefined, in enum order.
func Formats() []Format {
	formats := make([]Format, 0, formatCount-1)
	for f := FormatUndefined + 1; f < formatCount; f++ {
		formats = append(formats, f)
	}
	return formats
}

func GetFormatAttribs(format Format) FormatAttributes {
	if format < 0 || format >= formatCount {
		return formatAttribs[FormatUndefined]
	}
	return formatAttribs[format]
}

func IsDepthFormat(format Format) bool {
	return GetFormatAttribs(format).Flags&FormatHasDepth != 0
}

func IsStencilFormat(format Format) bool {
	return GetFormatAttribs(format).Flags&FormatHasStencil != 0
}

func IsDepthOrStencilFormat(format Format) bool {
	return GetFormatAttribs(format).Flags&FormatHasDepthStencil != 0
}

func IsColorFormat(format Format) bool {
	return GetFormatAttribs(format).Flags&FormatIsColor != 0
}

func IsCompressedFormat(format Format) bool {
	return GetFormatAttribs(format).Flags&FormatIsCompressed != 0
}

/**
 * @brief Per-channel bit widths of a format.
 */
type FormatBits struct {
	Color   uint32
	Depth   uint32
	Stencil uint32
}

// GetFormatBits splits a format into color, depth and stencil bits and returns
// the total bit size of the format. Depth-stencil formats use fixed splits, all
// other formats report their whole bit size as color bits. Callers that only
// need some of the fields ignore the others.
func GetFormatBits(format Format) (FormatBits, uint32) {
	attribs := GetFormatAttribs(format)
	switch format {
	case FormatD16UNorm:
		return FormatBits{Color: 0, Depth: 16, Stencil: 0}, attribs.BitSize
	case FormatD24UNormS8UInt:
		return FormatBits{Color: 0, Depth: 24, Stencil: 8}, attribs.BitSize
	case FormatD32Float:
		return FormatBits{Color: 0, Depth: 32, Stencil: 0}, attribs.BitSize
	case FormatD32FloatS8X24UInt:
		return FormatBits{Color: 0, Depth: 32, Stencil: 8}, attribs.BitSize
	default:
		return FormatBits{Color: attribs.BitSize}, attribs.BitSize
	}
}
