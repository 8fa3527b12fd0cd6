package platform

import "unsafe"

/** @brief Native window handle handed to back-ends that create their own surface. */
type NativeHandle struct {
	Window uintptr
}

// WriteNativeHandle copies handle into the buffer at ptr. It fails without
// writing when ptr is nil or size is not exactly the size of NativeHandle.
func WriteNativeHandle(handle NativeHandle, ptr unsafe.Pointer, size uintptr) bool {
	if ptr == nil || size != unsafe.Sizeof(handle) {
		return false
	}
	*(*NativeHandle)(ptr) = handle
	return true
}
