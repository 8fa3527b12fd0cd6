package opengl

const (
	ACTIVE_ATTRIBUTES          = 0x8B89
	ACTIVE_UNIFORMS            = 0x8B86
	ACTIVE_UNIFORM_BLOCKS      = 0x8A36
	ALWAYS                     = 0x0207
	CLAMP_TO_BORDER            = 0x812D
	CLAMP_TO_EDGE              = 0x812F
	COMPARE_REF_TO_TEXTURE     = 0x884E
	COMPILE_STATUS             = 0x8B81
	COMPUTE_SHADER             = 0x91B9
	EQUAL                      = 0x0202
	EXTENSIONS                 = 0x1F03
	FALSE                      = 0
	FLOAT                      = 0x1406
	FLOAT_MAT3                 = 0x8B5B
	FLOAT_MAT4                 = 0x8B5C
	FLOAT_VEC2                 = 0x8B50
	FLOAT_VEC3                 = 0x8B51
	FLOAT_VEC4                 = 0x8B52
	FRAGMENT_SHADER            = 0x8B30
	GEOMETRY_SHADER            = 0x8DD9
	GEQUAL                     = 0x0206
	GREATER                    = 0x0204
	IMAGE_2D                   = 0x904D
	INT                        = 0x1404
	INT_VEC2                   = 0x8B53
	INT_VEC3                   = 0x8B54
	INT_VEC4                   = 0x8B55
	INVALID_INDEX              = 0xFFFFFFFF
	LEQUAL                     = 0x0203
	LESS                       = 0x0201
	LINEAR                     = 0x2601
	LINEAR_MIPMAP_LINEAR       = 0x2703
	LINEAR_MIPMAP_NEAREST      = 0x2701
	LINK_STATUS                = 0x8B82
	MAX_COLOR_ATTACHMENTS      = 0x8CDF
	MAX_COLOR_TEXTURE_SAMPLES  = 0x910E
	MAX_DEPTH_TEXTURE_SAMPLES  = 0x910F
	MAX_FRAMEBUFFER_SAMPLES    = 0x9318
	MAX_SAMPLES                = 0x8D57
	MAX_TEXTURE_MAX_ANISOTROPY = 0x84FF
	MAX_TEXTURE_SIZE           = 0x0D33
	MIRROR_CLAMP_TO_EDGE       = 0x8743
	MIRRORED_REPEAT            = 0x8370
	NEAREST                    = 0x2600
	NEAREST_MIPMAP_LINEAR      = 0x2702
	NEAREST_MIPMAP_NEAREST     = 0x2700
	NEVER                      = 0x0200
	NONE                       = 0
	NOTEQUAL                   = 0x0205
	NUM_EXTENSIONS             = 0x821D
	READ_WRITE                 = 0x88BA
	REPEAT                     = 0x2901
	RGBA8                      = 0x8058
	SAMPLER_2D                 = 0x8B5E
	SAMPLER_2D_SHADOW          = 0x8B62
	SAMPLER_3D                 = 0x8B5F
	SAMPLER_CUBE               = 0x8B60
	SHADER_STORAGE_BLOCK       = 0x92E6
	SHADER_STORAGE_BUFFER      = 0x90D2
	TESS_CONTROL_SHADER        = 0x8E88
	TESS_EVALUATION_SHADER     = 0x8E87
	TEXTURE0                   = 0x84C0
	TEXTURE_2D                 = 0x0DE1
	TEXTURE_BORDER_COLOR       = 0x1004
	TEXTURE_COMPARE_FUNC       = 0x884D
	TEXTURE_COMPARE_MODE       = 0x884C
	TEXTURE_LOD_BIAS           = 0x8501
	TEXTURE_MAG_FILTER         = 0x2800
	TEXTURE_MAX_ANISOTROPY     = 0x84FE
	TEXTURE_MAX_LOD            = 0x813B
	TEXTURE_MIN_FILTER         = 0x2801
	TEXTURE_MIN_LOD            = 0x813A
	TEXTURE_WRAP_R             = 0x8072
	TEXTURE_WRAP_S             = 0x2802
	TEXTURE_WRAP_T             = 0x2803
	TRUE                       = 1
	UNIFORM_BLOCK_BINDING      = 0x8A3F
	UNIFORM_BLOCK_DATA_SIZE    = 0x8A40
	UNIFORM_BUFFER             = 0x8A11
	UNSIGNED_INT               = 0x1405
	UNSIGNED_INT_VEC2          = 0x8DC6
	UNSIGNED_INT_VEC3          = 0x8DC7
	UNSIGNED_INT_VEC4          = 0x8DC8
	VERSION                    = 0x1F02
	VERTEX_SHADER              = 0x8B31
)
