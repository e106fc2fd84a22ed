package stream

// asciiFrequencies seeds the shared Huffman table. The counts were sampled
// from typical in-game chat and object-name traffic and are frozen: both
// peers bake the same table into the binary, so the codes never travel.
// Every entry gets +1 at build time to keep all 256 symbols representable.
var asciiFrequencies = [256]uint32{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 329,
	21, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 2809, 68, 0, 27, 0, 58, 3, 62,
	4, 7, 0, 0, 15, 65, 554, 3, 394, 404,
	189, 117, 30, 51, 27, 15, 34, 32, 80, 1,
	142, 3, 142, 39, 0, 144, 125, 44, 122, 275,
	70, 135, 61, 127, 8, 12, 113, 246, 122, 36,
	185, 1, 149, 309, 335, 12, 11, 14, 54, 151,
	0, 0, 2, 0, 0, 211, 0, 2090, 344, 736,
	993, 2872, 701, 605, 646, 1552, 328, 305, 1240, 735,
	1533, 1713, 562, 3, 1775, 1149, 1469, 979, 407, 553,
	59, 279, 31, 0, 0, 0, 68, 0,
	// 128..255: high-bit bytes never appear in the sampled traffic.
}
