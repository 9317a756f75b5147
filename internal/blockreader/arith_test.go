package blockreader

import "testing"

func TestCountBlocks(t *testing.T) {
	cases := []struct {
		filesz  FileSz
		blocksz BlockSz
		want    Count
	}{
		{0, 1, 0},
		{0, 4096, 0},
		{1, 1, 1},
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
		{8, 4, 2},
		{9, 4, 3},
	}
	for _, c := range cases {
		if got := CountBlocks(c.filesz, c.blocksz); got != c.want {
			t.Errorf("CountBlocks(%d, %d) = %d, want %d", c.filesz, c.blocksz, got, c.want)
		}
	}
}

func TestBlockOffsetArithmetic(t *testing.T) {
	const blocksz BlockSz = 4

	for bo := BlockOffset(0); bo < 5; bo++ {
		fo := FileOffsetAtBlockOffset(bo, blocksz)
		if fo != FileOffset(uint64(bo)*uint64(blocksz)) {
			t.Fatalf("FileOffsetAtBlockOffset(%d) = %d", bo, fo)
		}
		if got := BlockOffsetAtFileOffset(fo, blocksz); got != bo {
			t.Fatalf("BlockOffsetAtFileOffset(%d) = %d, want %d", fo, got, bo)
		}
	}

	for fo := FileOffset(0); fo < 20; fo++ {
		bo := BlockOffsetAtFileOffset(fo, blocksz)
		bi := BlockIndexAtFileOffset(fo, blocksz)
		if got := FileOffsetAtBlockOffsetIndex(bo, blocksz, bi); got != fo {
			t.Fatalf("round-trip fo=%d -> bo=%d,bi=%d -> %d", fo, bo, bi, got)
		}
		if uint64(bi) >= uint64(blocksz) {
			t.Fatalf("block index %d out of range for blocksz %d", bi, blocksz)
		}
	}
}

func TestLastBlockOffset(t *testing.T) {
	if _, ok := LastBlockOffset(0, 4); ok {
		t.Fatalf("expected no last block offset for empty file")
	}
	if bo, ok := LastBlockOffset(1, 4); !ok || bo != 0 {
		t.Fatalf("LastBlockOffset(1,4) = %d,%v", bo, ok)
	}
	if bo, ok := LastBlockOffset(8, 4); !ok || bo != 1 {
		t.Fatalf("LastBlockOffset(8,4) = %d,%v", bo, ok)
	}
	if bo, ok := LastBlockOffset(9, 4); !ok || bo != 2 {
		t.Fatalf("LastBlockOffset(9,4) = %d,%v", bo, ok)
	}
}
