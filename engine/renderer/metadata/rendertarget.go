package metadata

// MaxNumColorAttachments is the fixed capacity of color and resolve attachment arrays.
const MaxNumColorAttachments = 8

/** @brief A texture that can be attached to a render target. */
type Texture interface {
	Format() Format
}

type Extent2D struct {
	Width  uint32
	Height uint32
}

/**
 * @brief One color, depth-stencil or resolve attachment of a render target.
 * The attachment is enabled if it has a texture or an explicit format.
 */
type AttachmentDescriptor struct {
	/** @brief Explicit attachment format. If undefined, the texture format is used. */
	Format Format
	/** @brief Optional texture to render into. */
	Texture    Texture
	MipLevel   uint32
	ArrayLayer uint32
}

type RenderTargetDescriptor struct {
	Name       string
	Resolution Extent2D
	/** @brief Requested number of samples, 0 disables multi-sampling. */
	Samples uint32
	/** @brief Color attachments, active attachments must be contiguous from index 0. */
	ColorAttachments [MaxNumColorAttachments]AttachmentDescriptor
	/** @brief Multi-sample resolve targets, parallel to ColorAttachments. */
	ResolveAttachments     [MaxNumColorAttachments]AttachmentDescriptor
	DepthStencilAttachment AttachmentDescriptor
}
