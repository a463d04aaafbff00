/*
NAME
  crc32c.go

DESCRIPTION
  crc32c.go implements CRC32C (Castagnoli), initial value 0xFFFFFFFF,
  final XOR 0xFFFFFFFF, reflected byte-table implementation.

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

package prng

import "sync"

const castagnoliPoly = 0x82F63B78

var crc32cTableOnce sync.Once
var crc32cTable [256]uint32

func buildCRC32CTable() {
	for i := 0; i < 256; i++ {
		c := uint32(i)
		for k := 0; k < 8; k++ {
			if c&1 != 0 {
				c = castagnoliPoly ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		crc32cTable[i] = c
	}
}

// CRC32C computes the Castagnoli CRC-32 checksum of data.
func CRC32C(data []byte) uint32 {
	crc32cTableOnce.Do(buildCRC32CTable)
	crc := uint32(0xFFFFFFFF)
	for _, b := range data {
		crc = crc32cTable[byte(crc)^b] ^ (crc >> 8)
	}
	return crc ^ 0xFFFFFFFF
}
