package vulkan

import "sync"

type LockGroup string

const (
	SamplerManagement  LockGroup = "sampler_management"
	PipelineManagement LockGroup = "pipeline_management"
	ShaderManagement   LockGroup = "shader_management"
)

// VulkanLockPool serializes native calls per object group. Vulkan requires
// external synchronization for objects created from the same device when
// the embedder records from several goroutines.
type VulkanLockPool struct {
	locks map[LockGroup]*sync.Mutex
	mu    sync.Mutex // Protects access to the locks map
}

func NewVulkanLockPool() *VulkanLockPool {
	return &VulkanLockPool{
		locks: make(map[LockGroup]*sync.Mutex),
	}
}

// Get or create the mutex of a group and lock it.
func (vs *VulkanLockPool) setLock(group LockGroup) *sync.Mutex {
	vs.mu.Lock()
	l, exists := vs.locks[group]
	if !exists {
		l = &sync.Mutex{}
		vs.locks[group] = l
	}
	vs.mu.Unlock()

	l.Lock()
	return l
}

func (vs *VulkanLockPool) SafeCall(group LockGroup, fn func() error) error {
	l := vs.setLock(group)
	defer l.Unlock()

	return fn()
}
