package driver

import (
	"encoding/binary"

	"slang/internal/project"
	"slang/internal/source"
)

// cacheKey: H(content || schema || stage || max). Warning policy is applied
// after the cache, so it is not part of the key.
func cacheKey(file *source.File, opts Options) project.Digest {
	var meta [6]byte
	binary.LittleEndian.PutUint16(meta[0:2], diskCacheSchemaVersion)
	binary.LittleEndian.PutUint32(meta[2:6], uint32(max(opts.MaxDiagnostics, 0)))
	return project.Combine(project.Digest(file.Hash), meta[:], []byte(stageOrDefault(opts.Stage)))
}
