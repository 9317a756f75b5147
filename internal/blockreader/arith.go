package blockreader

// CountBlocks returns ceil(filesz / blocksz), matching the project
// convention that an empty file has zero blocks (§9 "Empty file").
func CountBlocks(filesz FileSz, blocksz BlockSz) Count {
	if filesz == 0 {
		return 0
	}
	return Count((uint64(filesz) + uint64(blocksz) - 1) / uint64(blocksz))
}

// FileOffsetAtBlockOffset returns the file offset of the first byte of
// block bo.
func FileOffsetAtBlockOffset(bo BlockOffset, blocksz BlockSz) FileOffset {
	return FileOffset(uint64(bo) * uint64(blocksz))
}

// BlockOffsetAtFileOffset returns the block that contains byte fo.
func BlockOffsetAtFileOffset(fo FileOffset, blocksz BlockSz) BlockOffset {
	return BlockOffset(uint64(fo) / uint64(blocksz))
}

// BlockIndexAtFileOffset returns the byte index within a block of byte fo.
func BlockIndexAtFileOffset(fo FileOffset, blocksz BlockSz) BlockIndex {
	return BlockIndex(uint64(fo) % uint64(blocksz))
}

// FileOffsetAtBlockOffsetIndex reassembles a file offset from a block
// offset and an index within that block.
func FileOffsetAtBlockOffsetIndex(bo BlockOffset, blocksz BlockSz, bi BlockIndex) FileOffset {
	return FileOffset(uint64(bo)*uint64(blocksz) + uint64(bi))
}

// LastBlockOffset returns the offset of the final block of a file of the
// given size, or false if the file is empty.
func LastBlockOffset(filesz FileSz, blocksz BlockSz) (BlockOffset, bool) {
	if filesz == 0 {
		return 0, false
	}
	return BlockOffset((uint64(filesz) - 1) / uint64(blocksz)), true
}
