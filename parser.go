package vciph

// parseState is the stage of the incremental stream parser.
type parseState uint8

const (
	stateSeekMarker parseState = iota
	stateReadLength
	stateReadPayload
	stateDone
)

// streamParser reassembles an embedded stream one decoded bit at a time.
//
// The marker is matched with an 88-bit sliding window: each fed bit
// shifts the window left by one and the window is compared byte-exact
// against Marker. Only a full, exact match moves the parser on, so no
// length bit is ever interpreted before the marker has been validated in
// its entirety. The discard-oldest window also means a stream with
// leading garbage resynchronizes at the first genuine marker occurrence.
type streamParser struct {
	state parseState

	window     [markerBytes]byte
	windowBits int

	length    uint32
	lengthGot int

	payload []byte
	cur     byte
	curBits int
}

// feed consumes one decoded bit (0 or 1) and advances the state machine.
// Feeding after DONE is a no-op.
func (p *streamParser) feed(bit uint8) {
	switch p.state {
	case stateSeekMarker:
		for i := 0; i < markerBytes-1; i++ {
			p.window[i] = p.window[i]<<1 | p.window[i+1]>>7
		}
		p.window[markerBytes-1] = p.window[markerBytes-1]<<1 | bit
		if p.windowBits < markerBits {
			p.windowBits++
		}
		if p.windowBits == markerBits && p.window == Marker {
			p.state = stateReadLength
		}

	case stateReadLength:
		p.length = p.length<<1 | uint32(bit)
		p.lengthGot++
		if p.lengthGot == lengthBits {
			if p.length == 0 {
				p.payload = []byte{}
				p.state = stateDone
			} else {
				p.state = stateReadPayload
			}
		}

	case stateReadPayload:
		p.cur = p.cur<<1 | bit
		p.curBits++
		if p.curBits == 8 {
			p.payload = append(p.payload, p.cur)
			p.cur = 0
			p.curBits = 0
			if uint32(len(p.payload)) == p.length {
				p.state = stateDone
			}
		}

	case stateDone:
	}
}

func (p *streamParser) done() bool { return p.state == stateDone }

// lengthKnown reports whether the length field has been fully decoded.
func (p *streamParser) lengthKnown() bool { return p.state >= stateReadPayload || p.done() }

// needBits reports how many more bits the parser requires to finish the
// payload. Only meaningful once lengthKnown. int64 so a hostile length
// field cannot overflow the arithmetic on 32-bit platforms.
func (p *streamParser) needBits() int64 {
	return int64(p.length)*8 - int64(len(p.payload)*8+p.curBits)
}
