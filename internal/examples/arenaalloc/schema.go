//go:build ignore

// Schema for the example allocator; read by bucketgen, never compiled.
package arenaalloc

//wasmalloc:allocator sort_buckets=true
type ArenaAlloc struct {
	overflow Bucket[SlotSize[64], NumSlots[64], Align[64]]
	vec2     Bucket[SlotSize[2], NumSlots[128], Align[2]]
	vec4     Bucket[SlotSize[4], NumSlots[96], Align[4]]
}
