package maplabel

// hilbertXYToIndex maps a cell of a 2^n x 2^n grid to its distance along the Hilbert curve.
// From https://github.com/rawrunprotected/hilbert_curves (public domain)
func hilbertXYToIndex(n uint32, x uint32, y uint32) uint32 {
	x = x << (16 - n)
	y = y << (16 - n)

	var A, B, C, D uint32

	// Initial prefix scan round, prime with x and y
	{
		a := uint32(x ^ y)
		b := uint32(0xFFFF ^ a)
		c := uint32(0xFFFF ^ (x | y))
		d := uint32(x & (y ^ 0xFFFF))

		A = a | (b >> 1)
		B = (a >> 1) ^ a

		C = ((c >> 1) ^ (b & (d >> 1))) ^ c
		D = ((a & (c >> 1)) ^ (d >> 1)) ^ d
	}

	for _, shift := range [2]uint32{2, 4} {
		a, b, c, d := A, B, C, D

		A = ((a & (a >> shift)) ^ (b & (b >> shift)))
		B = ((a & (b >> shift)) ^ (b & ((a ^ b) >> shift)))

		C ^= ((a & (c >> shift)) ^ (b & (d >> shift)))
		D ^= ((b & (c >> shift)) ^ ((a ^ b) & (d >> shift)))
	}

	// Final round and projection
	{
		a, b, c, d := A, B, C, D

		C ^= ((a & (c >> 8)) ^ (b & (d >> 8)))
		D ^= ((b & (c >> 8)) ^ ((a ^ b) & (d >> 8)))
	}

	// Undo transformation prefix scan
	a := uint32(C ^ (C >> 1))
	b := uint32(D ^ (D >> 1))

	// Recover index bits
	i0 := uint32(x ^ y)
	i1 := uint32(b | (0xFFFF ^ (i0 | a)))

	return ((interleave(i1) << 1) | interleave(i0)) >> (32 - 2*n)
}

func interleave(x uint32) uint32 {
	x = (x | (x << 8)) & 0x00FF00FF
	x = (x | (x << 4)) & 0x0F0F0F0F
	x = (x | (x << 2)) & 0x33333333
	x = (x | (x << 1)) & 0x55555555
	return x
}

// sortByHilbert is a quicksort that moves the node data alongside the hilbert values.
func sortByHilbert(values []uint32, nodes []packedNode, left, right int) {
	if left >= right {
		return
	}

	pivot := values[(left+right)>>1]
	i := left - 1
	j := right + 1

	for {
		i++
		for values[i] < pivot {
			i++
		}
		j--
		for values[j] > pivot {
			j--
		}
		if i >= j {
			break
		}
		values[i], values[j] = values[j], values[i]
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}

	sortByHilbert(values, nodes, left, j)
	sortByHilbert(values, nodes, j+1, right)
}
