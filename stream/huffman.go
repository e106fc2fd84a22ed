package stream

import "sync"

// MaxStringLength is the longest string the string codec can carry; the
// on-wire length field is a single byte.
const MaxStringLength = 255

// huffNode is an interior tree node. Child indices follow the signed
// convention: a non-negative index points into the node pool, a negative
// index -k-1 points at leaf k.
type huffNode struct {
	pop    uint32
	index0 int16
	index1 int16
}

// huffLeaf carries one byte symbol and its generated code, LSB-first in
// code with numBits significant bits.
type huffLeaf struct {
	pop     uint32
	numBits uint8
	symbol  byte
	code    uint32
}

// HuffmanTable is a static Huffman coder for short ASCII strings. The shared
// table is seeded from a frequency table baked into the binary, so both
// peers reproduce identical codes without any transport. Node 0 is the root.
type HuffmanTable struct {
	freqs  [256]uint32
	leaves [256]huffLeaf
	nodes  []huffNode
	built  bool
}

// TableOption configures a Huffman table before it is built.
type TableOption func(*HuffmanTable)

// WithFrequencies overrides the symbol frequency table. Peers must agree on
// the table bit-exactly; this is intended for private tables over closed
// channels, never for the shared wire table.
func WithFrequencies(freqs [256]uint32) TableOption {
	return func(t *HuffmanTable) {
		t.freqs = freqs
	}
}

// NewHuffmanTable builds a Huffman table. Without options it is seeded from
// the baked-in frequency table and matches the shared table bit for bit.
func NewHuffmanTable(opts ...TableOption) *HuffmanTable {
	t := &HuffmanTable{freqs: asciiFrequencies}
	for _, opt := range opts {
		opt(t)
	}
	t.build()

	return t
}

var (
	sharedTableOnce sync.Once
	sharedTable     *HuffmanTable
)

// sharedHuffman returns the process-wide table, building it on first use.
// sync.Once makes the lazy build safe even under multi-threaded misuse of
// the streams themselves.
func sharedHuffman() *HuffmanTable {
	sharedTableOnce.Do(func() {
		sharedTable = &HuffmanTable{freqs: asciiFrequencies}
		sharedTable.build()
	})

	return sharedTable
}

// wrapPop resolves the population of a build wrap through the signed-index
// convention.
func (t *HuffmanTable) wrapPop(w int16) uint32 {
	if w >= 0 {
		return t.nodes[w].pop
	}

	return t.leaves[-w-1].pop
}

// build constructs the tree and generates the per-symbol codes.
//
// Every frequency is bumped by one so all 256 symbols are representable.
// Pair selection scans the active wraps front to back and removes by
// swapping in the tail; this tie-breaking discipline shapes the tree, so it
// must stay identical on both peers.
func (t *HuffmanTable) build() {
	if t.built {
		panic("stream: huffman table built twice")
	}
	t.built = true

	for i := range t.leaves {
		t.leaves[i] = huffLeaf{pop: t.freqs[i] + 1, symbol: byte(i)}
	}

	// Node 0 is reserved for the root; merges fill in behind it, and the
	// root is copied down once the build finishes.
	t.nodes = make([]huffNode, 1, 256)

	wraps := make([]int16, 256)
	for i := range wraps {
		wraps[i] = int16(-i - 1)
	}

	for len(wraps) > 1 {
		min1, min2 := uint32(0xfffffffe), uint32(0xffffffff)
		idx1, idx2 := -1, -1
		for i, w := range wraps {
			p := t.wrapPop(w)
			if p < min1 {
				min2, idx2 = min1, idx1
				min1, idx1 = p, i
			} else if p < min2 {
				min2, idx2 = p, i
			}
		}

		t.nodes = append(t.nodes, huffNode{
			pop:    t.wrapPop(wraps[idx1]) + t.wrapPop(wraps[idx2]),
			index0: wraps[idx1],
			index1: wraps[idx2],
		})

		merge, nuke := idx1, idx2
		if merge > nuke {
			merge, nuke = nuke, merge
		}
		wraps[merge] = int16(len(t.nodes) - 1)

		last := len(wraps) - 1
		if nuke != last {
			wraps[nuke] = wraps[last]
		}
		wraps = wraps[:last]
	}

	t.nodes[0] = t.nodes[wraps[0]]

	// Walk the tree against a tiny scratch stream: a left descent writes a
	// 0 bit, a right descent rewinds and writes a 1, and the accumulated
	// pattern lands in each leaf.
	var scratch [4]byte
	bs := New(scratch[:])
	t.generateCodes(bs, 0, 0)
}

func (t *HuffmanTable) generateCodes(bs *Stream, index int16, depth int) {
	if index < 0 {
		leaf := &t.leaves[-index-1]
		leaf.code = wireOrder.Uint32(bs.data[:4])
		leaf.numBits = uint8(depth)

		return
	}

	node := t.nodes[index]
	pos := bs.BitPosition()

	bs.WriteFlag(false)
	t.generateCodes(bs, node.index0, depth+1)

	bs.SetBitPosition(pos)
	bs.WriteFlag(true)
	t.generateCodes(bs, node.index1, depth+1)

	bs.SetBitPosition(pos)
}

// writeBuffer Huffman-encodes str into s, truncated to maxLen bytes.
//
// When the symbol codes would not beat the raw bytes the string is sent
// uncompressed behind a cleared flag; ties go to raw. Either way an 8-bit
// length precedes the payload.
func (t *HuffmanTable) writeBuffer(s *Stream, str string, maxLen int) {
	length := len(str)
	if length > MaxStringLength {
		length = MaxStringLength
		s.truncated++
	}
	if length > maxLen {
		length = maxLen
	}

	numBits := 0
	for i := 0; i < length; i++ {
		numBits += int(t.leaves[str[i]].numBits)
	}

	if numBits >= length<<3 {
		s.WriteFlag(false)
		s.WriteInt(int32(length), 8)
		s.WriteBytes([]byte(str[:length]))

		return
	}

	s.WriteFlag(true)
	s.WriteInt(int32(length), 8)
	var code [4]byte
	for i := 0; i < length; i++ {
		leaf := &t.leaves[str[i]]
		wireOrder.PutUint32(code[:], leaf.code)
		s.WriteBits(int(leaf.numBits), code[:])
	}
}

// readBuffer decodes a string written by writeBuffer into dst and returns
// its length. Compressed symbols are decoded by walking the tree from the
// root one flag at a time until a leaf index is hit.
func (t *HuffmanTable) readBuffer(s *Stream, dst []byte) int {
	if s.ReadFlag() {
		length := int(s.ReadInt(8))
		for i := 0; i < length; i++ {
			index := int16(0)
			for index >= 0 {
				if s.ReadFlag() {
					index = t.nodes[index].index1
				} else {
					index = t.nodes[index].index0
				}
			}
			dst[i] = t.leaves[-index-1].symbol
		}

		return length
	}

	length := int(s.ReadInt(8))
	s.ReadBytes(dst[:length])

	return length
}

// SetStringBuffer binds a 256-byte scratch buffer holding the last string
// transmitted, enabling the differential-prefix shortcut. Both peers must
// bind identically seeded buffers; passing nil disables the shortcut.
func (s *Stream) SetStringBuffer(buf []byte) {
	s.stringBuf = buf
}

// TruncatedStrings returns how many strings this stream has truncated to
// MaxStringLength since it was created. SetBuffer does not reset the count.
func (s *Stream) TruncatedStrings() int {
	return s.truncated
}

// WriteString writes str truncated to maxLen bytes.
//
// A leading flag selects the differential shortcut: when a scratch buffer is
// bound and the string shares more than two leading bytes with the previous
// one, only the 8-bit prefix length and the Huffman-coded suffix travel.
// The scratch buffer is updated to the new string either way.
func (s *Stream) WriteString(str string, maxLen int) {
	t := sharedHuffman()

	if s.stringBuf == nil {
		s.WriteFlag(false)
		t.writeBuffer(s, str, maxLen)

		return
	}

	j := 0
	for j < maxLen && j < len(str) && j < len(s.stringBuf) && s.stringBuf[j] == str[j] {
		j++
	}
	if j > MaxStringLength {
		j = MaxStringLength
	}

	keep := len(str)
	if keep > maxLen {
		keep = maxLen
	}
	n := copy(s.stringBuf, str[:keep])
	if n < len(s.stringBuf) {
		s.stringBuf[n] = 0
	}

	if s.WriteFlag(j > 2) {
		s.WriteInt(int32(j), 8)
		t.writeBuffer(s, str[j:], maxLen-j)

		return
	}

	t.writeBuffer(s, str, maxLen)
}

// ReadString reads a string written by WriteString. When the writer used the
// differential shortcut the retained prefix comes out of the local scratch
// buffer, which must mirror the writer's.
func (s *Stream) ReadString() string {
	t := sharedHuffman()

	if s.ReadFlag() {
		if s.stringBuf == nil {
			// Writer used the shortcut against an unbound scratch buffer;
			// the peers disagree on the schema.
			s.err = true
			return ""
		}
		offset := int(s.ReadInt(8))
		n := t.readBuffer(s, s.stringBuf[offset:])
		end := offset + n
		if end < len(s.stringBuf) {
			s.stringBuf[end] = 0
		}

		return string(s.stringBuf[:end])
	}

	var buf [256]byte
	n := t.readBuffer(s, buf[:])
	if s.stringBuf != nil {
		copy(s.stringBuf, buf[:n])
		if n < len(s.stringBuf) {
			s.stringBuf[n] = 0
		}
	}

	return string(buf[:n])
}
