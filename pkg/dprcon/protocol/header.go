package protocol

import "bytes"

//oobHeader is the out-of-band marker prefixing every protocol packet,
//in both directions, on the shared game traffic port.
var oobHeader = []byte{0xFF, 0xFF, 0xFF, 0xFF}

func buildPacket(payload []byte) []byte {
	packet := make([]byte, 0, len(oobHeader)+len(payload))
	packet = append(packet, oobHeader...)
	return append(packet, payload...)
}

func stripHeader(data []byte) ([]byte, bool) {
	if !bytes.HasPrefix(data, oobHeader) {
		return nil, false
	}
	return data[len(oobHeader):], true
}
